package stats_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/likelemba/likelemba/internal/stats"
	"github.com/likelemba/likelemba/internal/tontine"
)

func newStatsApp(svc *stats.Service) *fiber.App {
	app := fiber.New()
	app.Get("/tontines/:tontineId/stats", stats.NewHandler(svc).Get)
	return app
}

func TestHandlerReturnsSummary(t *testing.T) {
	f := newFixture(t)
	app := newStatsApp(f.svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tontines/"+f.grp.ID+"/stats", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, resp.StatusCode)
	}
	var summary stats.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary != (stats.Summary{}) {
		t.Fatalf("expected zero summary for a fresh tontine, got %+v", summary)
	}
}

func TestHandlerUnknownTontineIs404(t *testing.T) {
	f := newFixture(t)
	app := newStatsApp(f.svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tontines/66666666-6666-6666-6666-666666666666/stats", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected %d got %d", fiber.StatusNotFound, resp.StatusCode)
	}
}

type failingTontines struct {
	tontine.Repository
}

func (failingTontines) Get(_ context.Context, _ string) (tontine.Tontine, error) {
	return tontine.Tontine{}, fmt.Errorf("store unavailable")
}

func TestHandlerStoreFailureIs500(t *testing.T) {
	svc := stats.NewService(failingTontines{}, nil, nil, nil)
	app := newStatsApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/tontines/77777777-7777-7777-7777-777777777777/stats", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected %d got %d", fiber.StatusInternalServerError, resp.StatusCode)
	}
}
