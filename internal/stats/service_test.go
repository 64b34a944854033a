package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/likelemba/likelemba/internal/contribution"
	"github.com/likelemba/likelemba/internal/identity"
	"github.com/likelemba/likelemba/internal/membership"
	"github.com/likelemba/likelemba/internal/payout"
	"github.com/likelemba/likelemba/internal/stats"
	"github.com/likelemba/likelemba/internal/tontine"
)

type fixture struct {
	users         *identity.Service
	members       *membership.Service
	contributions *contribution.Service
	payouts       *payout.Service
	svc           *stats.Service
	grp           tontine.Tontine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	identityRepo := identity.NewMemoryRepository()
	tontineRepo := tontine.NewMemoryRepository()
	members := membership.NewService(membership.NewMemoryRepository(tontineRepo), tontineRepo, identityRepo, nil)

	users := identity.NewService(identityRepo)
	tontines := tontine.NewService(tontineRepo, members)
	contributions := contribution.NewService(contribution.NewMemoryRepository(), tontineRepo, members)
	payouts := payout.NewService(payout.NewMemoryRepository(), tontineRepo, members, nil)

	treasurer, err := users.Register(context.Background(), identity.RegisterInput{
		Username: "treasurer",
		Phone:    "+242068400000",
		Email:    "treasurer@example.cg",
		Password: "secret1",
		Role:     identity.RoleTreasurer,
	})
	if err != nil {
		t.Fatalf("register treasurer: %v", err)
	}
	grp, err := tontines.Create(context.Background(), tontine.Spec{
		Name:               "Likelemba de Poto-Poto",
		ContributionAmount: 1000,
		Frequency:          tontine.FrequencyMonthly,
		RotationMode:       tontine.RotationSequential,
		MaxMembers:         5,
		StartDate:          time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}, treasurer.ID)
	if err != nil {
		t.Fatalf("create tontine: %v", err)
	}

	return &fixture{
		users:         users,
		members:       members,
		contributions: contributions,
		payouts:       payouts,
		svc:           stats.NewService(tontineRepo, contributions, payouts, members),
		grp:           grp,
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

func TestComputeUnknownTontine(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.Compute(context.Background(), "44444444-4444-4444-4444-444444444444"); !errors.Is(err, tontine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestComputeEmptyTontine(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.Compute(context.Background(), f.grp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := stats.Summary{}
	if summary != want {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestComputeAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.member(t, "+242068400001")
	second := f.member(t, "+242068400002")

	if _, err := f.contributions.Record(ctx, f.grp.ID, first.ID, 1000, 1); err != nil {
		t.Fatalf("record contribution: %v", err)
	}
	if _, err := f.contributions.Record(ctx, f.grp.ID, second.ID, 1000, 1); err != nil {
		t.Fatalf("record contribution: %v", err)
	}
	if _, err := f.payouts.Record(ctx, f.grp.ID, first.ID, 1, 1500); err != nil {
		t.Fatalf("record turn: %v", err)
	}

	summary, err := f.svc.Compute(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := stats.Summary{
		TotalContributions: 2000,
		TotalDistributed:   1500,
		RemainingBalance:   500,
		ActiveMembers:      2,
		TurnsCompleted:     1,
	}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
}

func TestRemainingBalanceMayGoNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beneficiary := f.member(t, "+242068400003")

	if _, err := f.contributions.Record(ctx, f.grp.ID, beneficiary.ID, 1000, 1); err != nil {
		t.Fatalf("record contribution: %v", err)
	}
	if _, err := f.payouts.Record(ctx, f.grp.ID, beneficiary.ID, 1, 2500); err != nil {
		t.Fatalf("record turn: %v", err)
	}

	summary, err := f.svc.Compute(ctx, f.grp.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if summary.RemainingBalance != -1500 {
		t.Fatalf("expected remaining balance -1500, got %d", summary.RemainingBalance)
	}
}
