package payout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/payout"
	"github.com/likelemba/likelemba/internal/tontine"
)

type fixture struct {
	users   *identity.Service
	members *membership.Service
	svc     *payout.Service
	grp     tontine.Tontine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	identityRepo := identity.NewMemoryRepository()
	tontineRepo := tontine.NewMemoryRepository()
	members := membership.NewService(membership.NewMemoryRepository(tontineRepo), tontineRepo, identityRepo, nil)

	users := identity.NewService(identityRepo)
	tontines := tontine.NewService(tontineRepo, members)

	treasurer, err := users.Register(context.Background(), identity.RegisterInput{
		Username: "treasurer",
		Phone:    "+242068300000",
		Email:    "treasurer@example.cg",
		Password: "secret1",
		Role:     identity.RoleTreasurer,
	})
	if err != nil {
		t.Fatalf("register treasurer: %v", err)
	}
	grp, err := tontines.Create(context.Background(), tontine.Spec{
		Name:               "Likelemba du port",
		ContributionAmount: 2000,
		Frequency:          tontine.FrequencyWeekly,
		RotationMode:       tontine.RotationSequential,
		MaxMembers:         5,
		StartDate:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}, treasurer.ID)
	if err != nil {
		t.Fatalf("create tontine: %v", err)
	}

	return &fixture{
		users:   users,
		members: members,
		svc:     payout.NewService(payout.NewMemoryRepository(), tontineRepo, members, nil),
		grp:     grp,
	}
}

func (f *fixture) member(t *testing.T, phone string) identity.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), identity.RegisterInput{
		Username: "user-" + phone,
		Phone:    phone,
		Email:    phone + "@example.cg",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register member: %v", err)
	}
	if _, err := f.members.Join(context.Background(), f.grp.ID, user.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	return user
}

func TestRecordRejectsNonMemberBeneficiary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	outsider, err := f.users.Register(ctx, identity.RegisterInput{
		Username: "outsider",
		Phone:    "+242068300099",
		Email:    "outsider@example.cg",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register outsider: %v", err)
	}

	if _, err := f.svc.Record(ctx, f.grp.ID, outsider.ID, 1, 10000); !errors.Is(err, payout.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestRecordRejectsBadInputs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beneficiary := f.member(t, "+242068300001")

	if _, err := f.svc.Record(ctx, f.grp.ID, beneficiary.ID, 1, 0); !errors.Is(err, payout.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := f.svc.Record(ctx, f.grp.ID, beneficiary.ID, 0, 10000); !errors.Is(err, payout.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := f.svc.Record(ctx, "33333333-3333-3333-3333-333333333333", beneficiary.ID, 1, 10000); !errors.Is(err, tontine.ErrNotFound) {
		t.Fatalf("expected tontine ErrNotFound, got %v", err)
	}
}

func TestRecordSumAndCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.member(t, "+242068300002")
	second := f.member(t, "+242068300003")

	turn, err := f.svc.Record(ctx, f.grp.ID, first.ID, 1, 10000)
	if err != nil {
		t.Fatalf("record first turn: %v", err)
	}
	if turn.UserID != first.ID || turn.AmountReceived != 10000 {
		t.Fatalf("unexpected turn %+v", turn)
	}
	if _, err := f.svc.Record(ctx, f.grp.ID, second.ID, 2, 8000); err != nil {
		t.Fatalf("record second turn: %v", err)
	}

	sum, err := f.svc.SumByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 18000 {
		t.Fatalf("expected distributed total 18000, got %d", sum)
	}

	count, err := f.svc.CountByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 turns completed, got %d", count)
	}

	turns, err := f.svc.ListByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns listed, got %d", len(turns))
	}
}

func TestSumAndCountDefaultToZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sum, err := f.svc.SumByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	count, err := f.svc.CountByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if sum != 0 || count != 0 {
		t.Fatalf("expected zero totals, got sum=%d count=%d", sum, count)
	}
}
