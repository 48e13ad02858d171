package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"tripsplit-backend/database"
	"tripsplit-backend/models"
)

const tripCacheTTL = 5 * time.Minute

func tripCacheKey(tripID uint) string {
	return fmt.Sprintf("trip:%d:full", tripID)
}

type tripRow struct {
	ID          uint
	Destination string
	Date        *time.Time
	Active      bool
	CreatedBy   string
}

type expenseRow struct {
	ID        uint
	Name      string
	PersonID  uint
	Amount    float64
	FirstName string
	LastName  string
}

type debtRow struct {
	ExpenseID uint
	PersonID  uint
	Amount    float64
	FirstName string
	LastName  string
}

func personName(first, last string) string {
	p := models.Person{FirstName: first, LastName: last}
	return p.FullName()
}

// FullTrip assembles the complete trip view: the trip joined with its
// creator, its people, its expenses denormalized with payer names, each
// expense's debts denormalized with ower names, and its editors.
//
// The four top-level queries run concurrently; debts fan out per expense once
// the expense list is in. Results are joined by ID, never by completion
// order. Returns (nil, nil) when the trip does not exist — decided after the
// fan-out, so absence costs no extra round trip. No cross-query snapshot is
// assumed: a row added mid-aggregation may or may not appear.
func FullTrip(ctx context.Context, tripID uint) (*models.TripView, error) {
	if view := cachedTrip(ctx, tripID); view != nil {
		return view, nil
	}

	var (
		trip    tripRow
		found   bool
		people  []models.Person
		expRows []expenseRow
		editors []models.EditorView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := database.DB.WithContext(gctx).
			Table("trips").
			Select("trips.id, trips.destination, trips.date, trips.active, users.username AS created_by").
			Joins("JOIN users ON users.id = trips.user_id").
			Where("trips.id = ?", tripID).
			Take(&trip).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err == nil {
			found = true
		}
		return err
	})
	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Where("trip_id = ?", tripID).
			Order("id").
			Find(&people).Error
	})
	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("expenses").
			Select("expenses.id, expenses.name, expenses.person_id, expenses.amount, people.first_name, people.last_name").
			Joins("JOIN people ON people.id = expenses.person_id").
			Where("expenses.trip_id = ?", tripID).
			Order("expenses.id").
			Scan(&expRows).Error
	})
	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("trip_editors").
			Select("users.id, users.username").
			Joins("JOIN users ON users.id = trip_editors.user_id").
			Where("trip_editors.trip_id = ?", tripID).
			Order("users.id").
			Scan(&editors).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	expenses := make([]models.ExpenseView, len(expRows))
	dg, dctx := errgroup.WithContext(ctx)
	for i, row := range expRows {
		i, row := i, row
		dg.Go(func() error {
			var debts []debtRow
			err := database.DB.WithContext(dctx).
				Table("debt").
				Select("debt.expense_id, debt.person_id, debt.amount, people.first_name, people.last_name").
				Joins("JOIN people ON people.id = debt.person_id").
				Where("debt.expense_id = ?", row.ID).
				Order("debt.person_id").
				Scan(&debts).Error
			if err != nil {
				return err
			}

			debtViews := make([]models.DebtView, len(debts))
			for j, d := range debts {
				debtViews[j] = models.DebtView{
					ExpenseID:  d.ExpenseID,
					PersonID:   d.PersonID,
					Amount:     d.Amount,
					PersonName: personName(d.FirstName, d.LastName),
				}
			}

			expenses[i] = models.ExpenseView{
				ID:         row.ID,
				Name:       row.Name,
				PersonID:   row.PersonID,
				Amount:     row.Amount,
				PersonName: personName(row.FirstName, row.LastName),
				Debts:      debtViews,
			}
			return nil
		})
	}
	if err := dg.Wait(); err != nil {
		return nil, err
	}

	if people == nil {
		people = []models.Person{}
	}
	if editors == nil {
		editors = []models.EditorView{}
	}

	view := &models.TripView{
		ID:          trip.ID,
		Destination: trip.Destination,
		Date:        trip.Date,
		Active:      trip.Active,
		CreatedBy:   trip.CreatedBy,
		People:      people,
		Expenses:    expenses,
		Editors:     editors,
	}

	cacheTrip(ctx, tripID, view)
	return view, nil
}

func cachedTrip(ctx context.Context, tripID uint) *models.TripView {
	if database.Redis == nil {
		return nil
	}

	data, err := database.Redis.Get(ctx, tripCacheKey(tripID)).Bytes()
	if err != nil {
		return nil
	}

	var view models.TripView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil
	}
	return &view
}

func cacheTrip(ctx context.Context, tripID uint, view *models.TripView) {
	if database.Redis == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, tripCacheKey(tripID), data, tripCacheTTL)
}

// InvalidateTrip drops the cached aggregate. Called on every mutation of a
// trip or any of its sub-resources.
func InvalidateTrip(ctx context.Context, tripID uint) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, tripCacheKey(tripID))
}
