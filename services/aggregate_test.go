package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	database.DB = db
	database.Redis = nil
	return db
}

func TestFullTripMissing(t *testing.T) {
	setupDB(t)

	view, err := services.FullTrip(context.Background(), 42)
	if err != nil {
		t.Fatalf("FullTrip: %v", err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil for a missing trip", view)
	}
}

func TestFullTripComposition(t *testing.T) {
	db := setupDB(t)

	alice := models.User{Username: "alice", Password: "x"}
	db.Create(&alice)
	trip := models.Trip{Destination: "Paris", Active: true, UserID: alice.ID}
	db.Create(&trip)

	bob := models.Person{FirstName: "Bob", TripID: trip.ID}
	ann := models.Person{FirstName: "Ann", LastName: "Archer", TripID: trip.ID}
	db.Create(&bob)
	db.Create(&ann)

	taxi := models.Expense{Name: "Taxi", Amount: 20.5, TripID: trip.ID, PersonID: bob.ID}
	hotel := models.Expense{Name: "Hotel", Amount: 120, TripID: trip.ID, PersonID: ann.ID}
	db.Create(&taxi)
	db.Create(&hotel)

	db.Create(&models.Debt{ExpenseID: taxi.ID, PersonID: ann.ID, Amount: 10.25})
	db.Create(&models.Debt{ExpenseID: hotel.ID, PersonID: bob.ID, Amount: 60})

	view, err := services.FullTrip(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("FullTrip: %v", err)
	}
	if view == nil {
		t.Fatal("view is nil")
	}

	if view.CreatedBy != "alice" || view.Destination != "Paris" || !view.Active {
		t.Errorf("trip header = %+v", view)
	}
	if len(view.People) != 2 {
		t.Fatalf("people = %d, want 2", len(view.People))
	}
	if len(view.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(view.Expenses))
	}

	// Debts join their own expense regardless of query completion order
	byID := map[uint]models.ExpenseView{}
	for _, e := range view.Expenses {
		byID[e.ID] = e
	}

	taxiView := byID[taxi.ID]
	if taxiView.PersonName != "Bob" {
		t.Errorf("taxi payer = %q, want Bob (first name only)", taxiView.PersonName)
	}
	if len(taxiView.Debts) != 1 || taxiView.Debts[0].PersonID != ann.ID {
		t.Fatalf("taxi debts = %+v", taxiView.Debts)
	}
	if taxiView.Debts[0].PersonName != "Ann Archer" {
		t.Errorf("taxi ower = %q, want Ann Archer", taxiView.Debts[0].PersonName)
	}
	if taxiView.Debts[0].Amount != 10.25 {
		t.Errorf("taxi debt amount = %v, want 10.25", taxiView.Debts[0].Amount)
	}

	hotelView := byID[hotel.ID]
	if hotelView.PersonName != "Ann Archer" {
		t.Errorf("hotel payer = %q, want Ann Archer", hotelView.PersonName)
	}
	if len(hotelView.Debts) != 1 || hotelView.Debts[0].PersonID != bob.ID {
		t.Errorf("hotel debts = %+v", hotelView.Debts)
	}
}

func TestFullTripEmptySections(t *testing.T) {
	db := setupDB(t)

	alice := models.User{Username: "alice", Password: "x"}
	db.Create(&alice)
	trip := models.Trip{Active: true, UserID: alice.ID}
	db.Create(&trip)

	view, err := services.FullTrip(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("FullTrip: %v", err)
	}

	// Empty sections are empty arrays, never null
	if view.People == nil || view.Expenses == nil || view.Editors == nil {
		t.Errorf("nil sections in view: %+v", view)
	}
	if len(view.People) != 0 || len(view.Expenses) != 0 || len(view.Editors) != 0 {
		t.Errorf("unexpected rows in empty trip: %+v", view)
	}
}
