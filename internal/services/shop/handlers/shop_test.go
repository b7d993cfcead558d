package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/api/gateway"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/testutils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

func createFullTestServer(t *testing.T, db *sql.DB) *fiber.App {
	logger := zaptest.NewLogger(t)
	cfg := testutils.GetTestConfig()
	gw := gateway.NewAPIGateway(cfg, logger, db)
	return gw.Router()
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

func TestShopHandlers_ListItems(t *testing.T) {
	db := testutils.SetupTestDB(t)
	defer db.Close()
	app := createFullTestServer(t, db)

	testutils.CreateTestItem(t, db, "pilot_test", "pilot", 100, 0, 0)
	testutils.CreateTestItem(t, db, "ship_test", "spaceship", 250, 0, 0)

	req := httptest.NewRequest(http.MethodGet, "/shop/items", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var items []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(items))
	}
}

func TestShopHandlers_BuyItem(t *testing.T) {
	db := testutils.SetupTestDB(t)
	defer db.Close()
	app := createFullTestServer(t, db)

	playerID := testutils.CreateTestPlayer(t, db, "shopper")
	testutils.CreateTestItem(t, db, "pilot_test", "pilot", 100, 0, 0)
	if _, err := db.Exec(`UPDATE players SET coin = 150 WHERE player_id = ?`, playerID); err != nil {
		t.Fatalf("Failed to fund player: %v", err)
	}

	resp := postJSON(t, app, "/shop/buy-item", map[string]string{
		"playerId":      playerID,
		"itemId":        "pilot_test",
		"paymentMethod": "coin",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	currency, ok := result["currency"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected currency object, got %v", result["currency"])
	}
	if currency["coin"] != float64(50) {
		t.Errorf("Expected coin 50, got %v", currency["coin"])
	}

	// Buying an owned item is a conflict
	resp = postJSON(t, app, "/shop/buy-item", map[string]string{
		"playerId":      playerID,
		"itemId":        "pilot_test",
		"paymentMethod": "coin",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["code"] != "already_owned" {
		t.Errorf("Expected code already_owned, got %v", result["code"])
	}
}

func TestShopHandlers_BuyItemInsufficientFunds(t *testing.T) {
	db := testutils.SetupTestDB(t)
	defer db.Close()
	app := createFullTestServer(t, db)

	playerID := testutils.CreateTestPlayer(t, db, "broke")
	testutils.CreateTestItem(t, db, "ship_test", "spaceship", 250, 0, 0)

	resp := postJSON(t, app, "/shop/buy-item", map[string]string{
		"playerId":      playerID,
		"itemId":        "ship_test",
		"paymentMethod": "coin",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["code"] != "insufficient_funds" {
		t.Errorf("Expected code insufficient_funds, got %v", result["code"])
	}
}

func TestShopHandlers_BuyCoins(t *testing.T) {
	db := testutils.SetupTestDB(t)
	defer db.Close()
	app := createFullTestServer(t, db)

	playerID := testutils.CreateTestPlayer(t, db, "spender")
	testutils.CreateTestItem(t, db, "coins_test", "coin_pack", 0, 10, 1000)
	if _, err := db.Exec(`UPDATE players SET diamond = 25 WHERE player_id = ?`, playerID); err != nil {
		t.Fatalf("Failed to fund player: %v", err)
	}

	resp := postJSON(t, app, "/shop/buy-coins", map[string]string{
		"playerId": playerID,
		"itemId":   "coins_test",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	currency, ok := result["currency"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected currency object, got %v", result["currency"])
	}
	if currency["coin"] != float64(1000) {
		t.Errorf("Expected coin 1000, got %v", currency["coin"])
	}
	if currency["diamond"] != float64(15) {
		t.Errorf("Expected diamond 15, got %v", currency["diamond"])
	}
}
