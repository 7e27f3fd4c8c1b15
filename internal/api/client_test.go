package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/squashclub/courtbook/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client, srv
}

func TestLogin_VerifiesSessionWithUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("username") != "1042" || r.FormValue("password") != "pin" {
			t.Errorf("unexpected credentials: %v", r.Form)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.Write([]byte("<html>main</html>"))
	})
	mux.HandleFunc("/bookings/get_user_info", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "User not logged in or session expired."})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"first_name": "Jane", "last_name": "Smith", "member_no": 1042, "credit": 50.0,
		})
	})

	client, _ := newTestClient(t, mux)
	member, err := client.Login(context.Background(), "1042", "pin")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if member.MemberNo != 1042 || member.FullName() != "Jane Smith" {
		t.Errorf("unexpected member: %+v", member)
	}
	if member.Credit != 50.0 {
		t.Errorf("credit not carried through: %v", member.Credit)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		// The server renders the login page again without a cookie.
		w.Write([]byte("<html>Invalid username or password</html>"))
	})
	mux.HandleFunc("/bookings/get_user_info", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "User not logged in or session expired."})
	})

	client, _ := newTestClient(t, mux)
	if _, err := client.Login(context.Background(), "1042", "wrong"); err == nil {
		t.Fatal("expected login to fail without a session cookie")
	}
}

func TestTimeSlots_SendsWireDateFormat(t *testing.T) {
	var gotDate string
	mux := http.NewServeMux()
	mux.HandleFunc("/main/courts/time_slots", func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		json.NewEncoder(w).Encode(map[string]any{
			"time_slots": []map[string]any{
				{"time": "06:00", "slot_id": 1, "slot_key": "2025-03-07 | slot #1"},
				{"time": "06:45", "slot_id": 2, "slot_key": "2025-03-07 | slot #2"},
			},
		})
	})

	client, _ := newTestClient(t, mux)
	slots, err := client.TimeSlots(context.Background(), "2025-03-07")
	if err != nil {
		t.Fatalf("TimeSlots failed: %v", err)
	}
	if gotDate != "07/03/2025" {
		t.Errorf("date sent as %q, want dd/MM/yyyy", gotDate)
	}
	if len(slots) != 2 || slots[1].SlotID != 2 || slots[0].Time != "06:00" {
		t.Errorf("unexpected slots: %+v", slots)
	}
}

func TestCreateBooking_ConflictIsAResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings/add", func(w http.ResponseWriter, r *http.Request) {
		var req models.BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode booking request: %v", err)
		}
		if req.DateContainer != "2025-03-07" {
			t.Errorf("date_container must stay ISO, got %q", req.DateContainer)
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "already_booked", "message": "Slot already booked.",
		})
	})

	client, _ := newTestClient(t, mux)
	result, err := client.CreateBooking(context.Background(), models.BookingRequest{
		PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2,
	})
	if err != nil {
		t.Fatalf("409 must decode as a result, got error: %v", err)
	}
	if !result.AlreadyBooked() {
		t.Errorf("expected already_booked, got %+v", result)
	}
}

func TestCreateBooking_ServerErrorSurfacesMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings/add", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Booking not allowed. Insufficient Lights Credit (0.00 or below).",
		})
	})

	client, _ := newTestClient(t, mux)
	_, err := client.CreateBooking(context.Background(), models.BookingRequest{
		PlayerNo: 1042, DateContainer: "2025-03-07", SlotID: 3, SelectedCourt: 2,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsStatus(err, http.StatusForbidden) {
		t.Errorf("expected a 403 Error, got %v", err)
	}
}

func TestDailyLimits_ExceededDecodesFrom403(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings/booking_daily_limits", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != "07/03/2025" {
			t.Errorf("date sent as %q", r.URL.Query().Get("date"))
		}
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "failed",
			"message": "Daily booking limit exceeded for one or more periods.",
			"limits": []map[string]any{
				{"period_id": 1, "period_description": "Normal", "bookings_count": 3, "limit": 2},
			},
		})
	})

	client, _ := newTestClient(t, mux)
	report, err := client.DailyLimits(context.Background(), "2025-03-07")
	if err != nil {
		t.Fatalf("403 limit report must decode, got error: %v", err)
	}
	if report.Status != "failed" || len(report.Limits) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Limits[0].BookingsCount != 3 || report.Limits[0].Limit != 2 {
		t.Errorf("unexpected limit row: %+v", report.Limits[0])
	}
}

func TestWeeklyLimits_SendsWindow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings/booking_weekly_limits", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "03/03/2025" || q.Get("end_date") != "09/03/2025" {
			t.Errorf("unexpected window: %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "limits": []any{}})
	})

	client, _ := newTestClient(t, mux)
	if _, err := client.WeeklyLimits(context.Background(), "2025-03-03", "2025-03-09"); err != nil {
		t.Fatalf("WeeklyLimits failed: %v", err)
	}
}

func TestPeriodsForDay_DynamicCourtKeys(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/main/courts/periods_for_day", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"time":    "06:00",
				"court_1": map[string]any{"description": "Normal", "period_id": 1},
				"court_2": map[string]any{"description": "Peak", "period_id": 2},
			},
		})
	})

	client, _ := newTestClient(t, mux)
	rows, err := client.PeriodsForDay(context.Background(), "2025-03-07")
	if err != nil {
		t.Fatalf("PeriodsForDay failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Time != "06:00" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].Periods[1] != 1 || rows[0].Periods[2] != 2 {
		t.Errorf("court keys not mapped: %+v", rows[0].Periods)
	}
}

func TestWaitlist_AddAndRemoveUseWireDates(t *testing.T) {
	var addDate, removeDate string
	mux := http.NewServeMux()
	mux.HandleFunc("/waitinglist/add", func(w http.ResponseWriter, r *http.Request) {
		var req waitlistRequest
		json.NewDecoder(r.Body).Decode(&req)
		addDate = req.Date
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Successfully added to waiting list.", "email_address": "jane@example.com",
		})
	})
	mux.HandleFunc("/waitinglist/remove", func(w http.ResponseWriter, r *http.Request) {
		var req waitlistRequest
		json.NewDecoder(r.Body).Decode(&req)
		removeDate = req.Date
		json.NewEncoder(w).Encode(map[string]string{"message": "Successfully removed from waiting list."})
	})

	client, _ := newTestClient(t, mux)
	result, err := client.WaitlistAdd(context.Background(), "2025-03-07", "10:30")
	if err != nil {
		t.Fatalf("WaitlistAdd failed: %v", err)
	}
	if result.AlreadyInList || result.EmailAddress != "jane@example.com" {
		t.Errorf("unexpected result: %+v", result)
	}
	if err := client.WaitlistRemove(context.Background(), "2025-03-07", "10:30"); err != nil {
		t.Fatalf("WaitlistRemove failed: %v", err)
	}
	if addDate != "07/03/2025" || removeDate != "07/03/2025" {
		t.Errorf("waiting list keys must be dd/MM/yyyy, got add=%q remove=%q", addDate, removeDate)
	}
}

func TestUpdateProfile_UsesWriteFieldNames(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/main/myprofile/update_profile", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["last_name"]; !ok {
			t.Error("update payload must use last_name, not surname")
		}
		if _, ok := body["surname"]; ok {
			t.Error("surname belongs to the read endpoint only")
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated successfully."})
	})

	client, _ := newTestClient(t, mux)
	err := client.UpdateProfile(context.Background(), ProfileUpdate{
		FirstName: "Jane", LastName: "Smith", CellPhone: "0821234567",
		Email: "jane@example.com", Credit: 50,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
}
