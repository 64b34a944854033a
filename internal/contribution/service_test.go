package contribution_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/likelemba/likelemba/internal/contribution"
	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/tontine"
)

type fixture struct {
	users   *identity.Service
	members *membership.Service
	svc     *contribution.Service
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
		Phone:    "+242068200000",
		Email:    "treasurer@example.cg",
		Password: "secret1",
		Role:     identity.RoleTreasurer,
	})
	if err != nil {
		t.Fatalf("register treasurer: %v", err)
	}
	grp, err := tontines.Create(context.Background(), tontine.Spec{
		Name:               "Likelemba des mamans",
		ContributionAmount: 1000,
		Frequency:          tontine.FrequencyMonthly,
		RotationMode:       tontine.RotationSequential,
		MaxMembers:         5,
		StartDate:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}, treasurer.ID)
	if err != nil {
		t.Fatalf("create tontine: %v", err)
	}

	return &fixture{
		users:   users,
		members: members,
		svc:     contribution.NewService(contribution.NewMemoryRepository(), tontineRepo, members),
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

func TestRecordRejectsNonMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	outsider, err := f.users.Register(ctx, identity.RegisterInput{
		Username: "outsider",
		Phone:    "+242068200099",
		Email:    "outsider@example.cg",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register outsider: %v", err)
	}

	if _, err := f.svc.Record(ctx, f.grp.ID, outsider.ID, 1000, 1); !errors.Is(err, contribution.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestRecordRejectsBadInputs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payer := f.member(t, "+242068200001")

	if _, err := f.svc.Record(ctx, f.grp.ID, payer.ID, 0, 1); !errors.Is(err, contribution.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := f.svc.Record(ctx, f.grp.ID, payer.ID, -200, 1); !errors.Is(err, contribution.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	if _, err := f.svc.Record(ctx, f.grp.ID, payer.ID, 1000, 0); !errors.Is(err, contribution.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := f.svc.Record(ctx, "22222222-2222-2222-2222-222222222222", payer.ID, 1000, 1); !errors.Is(err, tontine.ErrNotFound) {
		t.Fatalf("expected tontine ErrNotFound, got %v", err)
	}
}

func TestRepeatPaymentsAccumulate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payer := f.member(t, "+242068200002")

	if _, err := f.svc.Record(ctx, f.grp.ID, payer.ID, 1000, 1); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if _, err := f.svc.Record(ctx, f.grp.ID, payer.ID, 500, 1); err != nil {
		t.Fatalf("record second: %v", err)
	}

	sum, err := f.svc.SumByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 1500 {
		t.Fatalf("expected sum 1500, got %d", sum)
	}

	payments, err := f.svc.ListByTontine(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments kept, got %d", len(payments))
	}
}

func TestSumDefaultsToZero(t *testing.T) {
	f := newFixture(t)

	sum, err := f.svc.SumByTontine(context.Background(), f.grp.ID)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected zero sum with no payments, got %d", sum)
	}
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.member(t, "+242068200003")
	second := f.member(t, "+242068200004")

	if _, err := f.svc.Record(ctx, f.grp.ID, first.ID, 1000, 1); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := f.svc.Record(ctx, f.grp.ID, second.ID, 1000, 1); err != nil {
		t.Fatalf("record: %v", err)
	}

	mine, err := f.svc.ListByUser(ctx, first.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != first.ID {
		t.Fatalf("expected exactly the caller's payment, got %d", len(mine))
	}
}
