package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"tripsplit-backend/config"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
)

var fcmClient *messaging.Client

// InitPush sets up the Firebase messaging client. Push notifications are
// disabled gracefully when the credentials file is absent.
func InitPush() {
	credPath := config.AppConfig.FirebaseCredPath
	if _, err := os.Stat(credPath); err != nil {
		log.Println("⚠️  Firebase credentials not found, running without push notifications")
		return
	}

	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(credPath))
	if err != nil {
		log.Printf("⚠️  Firebase init failed, running without push notifications: %v", err)
		return
	}

	fcmClient, err = app.Messaging(context.Background())
	if err != nil {
		log.Printf("⚠️  Firebase messaging init failed: %v", err)
		fcmClient = nil
		return
	}

	log.Println("✅ Firebase messaging initialized")
}

func sendPush(fcmToken, title, body string, data map[string]string) {
	if fcmClient == nil || fcmToken == "" {
		return
	}

	_, err := fcmClient.Send(context.Background(), &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		log.Printf("❌ Push send error: %v", err)
	}
}

// NotifyExpenseAdded pings the trip's creator when one of their editors
// records an expense.
func NotifyExpenseAdded(trip models.Trip, expense models.Expense, actor string) {
	if actor == trip.CreatedBy {
		return
	}

	var creator models.User
	if err := database.DB.Where("username = ?", trip.CreatedBy).First(&creator).Error; err != nil {
		return
	}

	title := fmt.Sprintf("%s added an expense", actor)
	body := fmt.Sprintf("\"%s\" (%.2f) was added to %s", expense.Name, expense.Amount, tripLabel(trip))
	sendPush(creator.FCMToken, title, body, map[string]string{
		"type":       "expense_added",
		"trip_id":    strconv.FormatUint(uint64(trip.ID), 10),
		"expense_id": strconv.FormatUint(uint64(expense.ID), 10),
	})
}

// NotifyEditorAdded pings the new editor's device, when they linked one.
func NotifyEditorAdded(editor models.User, inviter string, trip models.Trip) {
	title := "You're an editor now"
	body := fmt.Sprintf("%s made you an editor on %s", inviter, tripLabel(trip))
	sendPush(editor.FCMToken, title, body, map[string]string{
		"type":    "editor_added",
		"trip_id": strconv.FormatUint(uint64(trip.ID), 10),
	})
}
