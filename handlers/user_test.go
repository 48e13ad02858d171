package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"tripsplit-backend/utils"
)

func TestGetUserProfile(t *testing.T) {
	r, _ := setupRouter(t)
	register(t, r, "alice", "pw1")
	token := login(t, r, "alice", "pw1")
	tripID := createTrip(t, r, token, "alice", "Paris")
	addPerson(t, r, token, tripID, "Bob", "")

	rec := doRequest(t, r, http.MethodGet, "/api/users/alice", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get user: got status %d, want 200", rec.Code)
	}

	var view struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Trips    []struct {
			ID        uint   `json:"id"`
			CreatedBy string `json:"created_by"`
			NumPeople int64  `json:"num_people"`
		} `json:"trips"`
		Friends []struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"friends"`
	}
	decodeBody(t, rec, &view)

	if view.Username != "alice" {
		t.Errorf("username = %q, want alice", view.Username)
	}
	if len(view.Trips) != 1 {
		t.Fatalf("trips = %d, want 1", len(view.Trips))
	}
	if view.Trips[0].ID != tripID || view.Trips[0].CreatedBy != "alice" {
		t.Errorf("trip = %+v", view.Trips[0])
	}
	if view.Trips[0].NumPeople != 1 {
		t.Errorf("num_people = %d, want 1", view.Trips[0].NumPeople)
	}
	if len(view.Friends) != 0 {
		t.Errorf("friends = %d, want 0", len(view.Friends))
	}
}

func TestGetUserNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/users/bongo", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != utils.CodeNotFound {
		t.Errorf("got code %q, want NotFound", code)
	}
}

func TestCreateTripRestrictedToOwnAccount(t *testing.T) {
	r, _ := setupRouter(t)
	register(t, r, "alice", "pw1")
	register(t, r, "bob", "pw2")
	bobToken := login(t, r, "bob", "pw2")

	t.Run("other user's token", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/users/alice/trips", bobToken, gin.H{
			"destination": "Oslo",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want 401", rec.Code)
		}
	})

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/users/alice/trips", "", gin.H{
			"destination": "Oslo",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/users/alice/trips", "not-a-token", gin.H{
			"destination": "Oslo",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want 401", rec.Code)
		}
	})

	// Resolution comes before authorization: a missing user is a 404 even
	// with a mismatched token.
	t.Run("missing user", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/users/nobody/trips", bobToken, gin.H{
			"destination": "Oslo",
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want 404", rec.Code)
		}
	})
}

func TestFriends(t *testing.T) {
	r, _ := setupRouter(t)
	register(t, r, "alice", "pw1")
	register(t, r, "bob", "pw2")
	aliceToken := login(t, r, "alice", "pw1")

	rec := doRequest(t, r, http.MethodGet, "/api/users/bob", "", nil)
	var bob struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &bob)

	rec = doRequest(t, r, http.MethodPost, "/api/users/alice/friends", aliceToken, gin.H{
		"friend_id": bob.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add friend: got status %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	t.Run("duplicate add is idempotent", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/users/alice/friends", aliceToken, gin.H{
			"friend_id": bob.ID,
		})
		if rec.Code != http.StatusOK {
			t.Errorf("got status %d, want 200", rec.Code)
		}
	})

	t.Run("self friending rejected", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet, "/api/users/alice", "", nil)
		var alice struct {
			ID uint `json:"id"`
		}
		decodeBody(t, rec, &alice)

		rec = doRequest(t, r, http.MethodPost, "/api/users/alice/friends", aliceToken, gin.H{
			"friend_id": alice.ID,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want 400", rec.Code)
		}
	})

	t.Run("unknown friend", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodPost, "/api/users/alice/friends", aliceToken, gin.H{
			"friend_id": 9999,
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want 404", rec.Code)
		}
	})

	t.Run("friend appears on profile", func(t *testing.T) {
		rec := doRequest(t, r, http.MethodGet, "/api/users/alice", "", nil)
		var view struct {
			Friends []struct {
				ID       uint   `json:"id"`
				Username string `json:"username"`
			} `json:"friends"`
		}
		decodeBody(t, rec, &view)
		if len(view.Friends) != 1 || view.Friends[0].Username != "bob" {
			t.Errorf("friends = %+v, want [bob]", view.Friends)
		}
	})

	t.Run("delete friendship", func(t *testing.T) {
		path := fmt.Sprintf("/api/users/alice/friends/%d", bob.ID)
		rec := doRequest(t, r, http.MethodDelete, path, aliceToken, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("got status %d, want 200", rec.Code)
		}

		rec = doRequest(t, r, http.MethodDelete, path, aliceToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("second delete: got status %d, want 404", rec.Code)
		}
	})
}
