package account

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/testutils"
)

func setupService(t *testing.T) (Service, db.PlayerStore) {
	dbConn := testutils.SetupTestDB(t)
	t.Cleanup(func() { dbConn.Close() })
	store := db.NewPlayerStore(dbConn)
	service := NewAccountService(testutils.GetTestConfig(), zaptest.NewLogger(t), store)
	return service, store
}

func TestCreatePlayer(t *testing.T) {
	service, store := setupService(t)
	ctx := context.Background()

	profile, err := service.CreatePlayer(ctx, "Alpha")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if profile.PlayerID == "" {
		t.Error("CreatePlayer did not assign an id")
	}
	if profile.PlayerName != "Alpha" {
		t.Errorf("PlayerName = %q, want Alpha", profile.PlayerName)
	}

	stored, err := store.Get(ctx, profile.PlayerID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Relationships.Friends == nil {
		t.Error("Relationship sets not initialized")
	}

	if _, err := service.CreatePlayer(ctx, "alpha"); !errors.Is(err, ErrNameTaken) {
		t.Errorf("Duplicate name error = %v, want ErrNameTaken", err)
	}
	if _, err := service.CreatePlayer(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Blank name error = %v, want ErrInvalidInput", err)
	}
	if _, err := service.CreatePlayer(ctx, "ab"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Short name error = %v, want ErrInvalidInput", err)
	}
}

func TestChangePlayerName(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	p1, err := service.CreatePlayer(ctx, "Alpha")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if _, err := service.CreatePlayer(ctx, "Bravo"); err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	if err := service.ChangePlayerName(ctx, p1.PlayerID, "Charlie"); err != nil {
		t.Fatalf("ChangePlayerName failed: %v", err)
	}
	got, err := service.GetPlayer(ctx, p1.PlayerID)
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if got.PlayerName != "Charlie" {
		t.Errorf("PlayerName = %q, want Charlie", got.PlayerName)
	}

	if err := service.ChangePlayerName(ctx, p1.PlayerID, "BRAVO"); !errors.Is(err, ErrNameTaken) {
		t.Errorf("Taken name error = %v, want ErrNameTaken", err)
	}
	// Re-casing your own name is allowed.
	if err := service.ChangePlayerName(ctx, p1.PlayerID, "CHARLIE"); err != nil {
		t.Errorf("Re-casing own name failed: %v", err)
	}
	if err := service.ChangePlayerName(ctx, "ghost", "Nobody"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("Unknown player error = %v, want ErrPlayerNotFound", err)
	}
}

func TestSelectPilotSpaceship(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	p, err := service.CreatePlayer(ctx, "Alpha")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	profile, err := service.SelectPilotSpaceship(ctx, p.PlayerID, "pilot_rookie", "ship_scout")
	if err != nil {
		t.Fatalf("SelectPilotSpaceship failed: %v", err)
	}
	if profile.PilotActive != "pilot_rookie" || profile.SpaceshipActive != "ship_scout" {
		t.Errorf("Actives = (%s, %s), want (pilot_rookie, ship_scout)", profile.PilotActive, profile.SpaceshipActive)
	}
	if !profile.Inventory.Pilots.Contains("pilot_rookie") || !profile.Inventory.Spaceships.Contains("ship_scout") {
		t.Errorf("Inventory = %+v, want selections granted", profile.Inventory)
	}

	// Re-selecting the same loadout does not duplicate inventory entries.
	profile, err = service.SelectPilotSpaceship(ctx, p.PlayerID, "pilot_rookie", "ship_scout")
	if err != nil {
		t.Fatalf("Second SelectPilotSpaceship failed: %v", err)
	}
	if len(profile.Inventory.Pilots) != 1 {
		t.Errorf("Pilots = %v, want one entry", profile.Inventory.Pilots)
	}
}

func TestSetActives(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	p, err := service.CreatePlayer(ctx, "Alpha")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if _, err := service.SelectPilotSpaceship(ctx, p.PlayerID, "pilot_rookie", "ship_scout"); err != nil {
		t.Fatalf("SelectPilotSpaceship failed: %v", err)
	}

	if _, err := service.SetActives(ctx, p.PlayerID, "pilot_ace", ""); !errors.Is(err, ErrNotOwned) {
		t.Errorf("Unowned pilot error = %v, want ErrNotOwned", err)
	}

	profile, err := service.SetActives(ctx, p.PlayerID, "pilot_rookie", "")
	if err != nil {
		t.Fatalf("SetActives failed: %v", err)
	}
	if profile.PilotActive != "pilot_rookie" || profile.SpaceshipActive != "ship_scout" {
		t.Errorf("Actives = (%s, %s), want pilot toggled only", profile.PilotActive, profile.SpaceshipActive)
	}
}

func TestAddAchievement(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	p, err := service.CreatePlayer(ctx, "Alpha")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	if err := service.AddAchievement(ctx, p.PlayerID, "first_blood"); err != nil {
		t.Fatalf("AddAchievement failed: %v", err)
	}
	// Repeated grants are no-ops.
	if err := service.AddAchievement(ctx, p.PlayerID, "first_blood"); err != nil {
		t.Fatalf("Second AddAchievement failed: %v", err)
	}

	profile, err := service.GetPlayer(ctx, p.PlayerID)
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if len(profile.Achievements) != 1 || profile.Achievements[0] != "first_blood" {
		t.Errorf("Achievements = %v, want [first_blood]", profile.Achievements)
	}
}

func TestSearchPlayers(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"Starlord", "starfish", "Moonrock"} {
		if _, err := service.CreatePlayer(ctx, name); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}
	}

	if _, err := service.SearchPlayers(ctx, "sta"); !errors.Is(err, ErrQueryTooShort) {
		t.Errorf("Short query error = %v, want ErrQueryTooShort", err)
	}

	results, err := service.SearchPlayers(ctx, "STAR")
	if err != nil {
		t.Fatalf("SearchPlayers failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("SearchPlayers returned %d results, want 2", len(results))
	}
}
