package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"groupcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/", r.URL.Path)
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		assert.Equal(t, "6", r.URL.Query().Get("month"))
		_ = json.NewEncoder(w).Encode([]models.Event{{ID: "1", Name: "Alice", EventDate: "2025-06-02"}})
	}))
	defer srv.Close()

	events, err := New(srv.URL+"/").Events(context.Background(), 2025, 6)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Alice", events[0].Name)
}

func TestFreeSlotsQuery(t *testing.T) {
	tests := []struct {
		name        string
		members     []string
		wantMembers []string
		wantGiven   bool
	}{
		{name: "nil members", members: nil, wantGiven: false},
		{name: "explicit empty", members: []string{}, wantMembers: []string{""}, wantGiven: true},
		{name: "two members", members: []string{"Alice", "Bob"}, wantMembers: []string{"Alice", "Bob"}, wantGiven: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, given := r.URL.Query()["members"]
				assert.Equal(t, tt.wantGiven, given)
				if tt.wantGiven {
					assert.Equal(t, tt.wantMembers, got)
				}
				assert.Equal(t, "30", r.URL.Query().Get("duration_minutes"))
				_, _ = io.WriteString(w, `{"2025-06-02":[{"start":"09:00","end":"10:00"}]}`)
			}))
			defer srv.Close()

			slots, err := New(srv.URL).FreeSlots(context.Background(), FreeSlotParams{Members: tt.members, DurationMinutes: 30})
			require.NoError(t, err)
			assert.Equal(t, []models.FreeSlot{{Start: "09:00", End: "10:00"}}, slots["2025-06-02"])
		})
	}
}

func TestSubmitSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Alice", r.FormValue("name"))
		assert.Equal(t, "毎週月曜 9:00-10:00", r.FormValue("schedule_text"))
		assert.Equal(t, "7", r.FormValue("target_month"))
		files := r.MultipartForm.File["images"]
		if assert.Len(t, files, 1) {
			assert.Equal(t, "week.png", files[0].Filename)
			assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	events, err := New(srv.URL).SubmitSchedule(context.Background(), Submission{
		Name:        "Alice",
		Text:        "毎週月曜 9:00-10:00",
		Images:      []Upload{{Filename: "week.png", MIMEType: "image/png", Data: []byte("png")}},
		TargetYear:  2025,
		TargetMonth: 7,
	})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "json detail", status: http.StatusBadRequest, body: `{"detail":"氏名を入力してください。"}`, wantDetail: "氏名を入力してください。"},
		{name: "plain body", status: http.StatusBadGateway, body: "upstream down", wantDetail: "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).DeleteByDateAndName(context.Background(), "2025-06-02", "Alice")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestDeleteAllSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"message":"ok","deleted":4}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL, WithAdminToken("tok")).DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Deleted)
}
