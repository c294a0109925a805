package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-advisor/domain"
)

var testSession = domain.Session{UserID: 7, Token: "tok-123"}

func TestAnalysisClient_Analyze(t *testing.T) {
	var got domain.AnalysisRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/health/analyze", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bmi":24.1,"riskScore":"Medium","diabetesStage":"Pre-Diabetic","obesityStage":"Normal Weight","warnings":["w1"]}`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL+"/", time.Second)
	request := domain.AnalysisRequest{
		UserID:        7,
		Height:        1.79832,
		Weight:        70,
		SugarFasting:  110,
		SugarPost:     150,
		BloodPressure: "120/80",
		ActivityLevel: "Moderate",
		FamilyHistory: "No",
	}

	result, err := client.Analyze(context.Background(), testSession, request)
	require.NoError(t, err)
	assert.Equal(t, request, got)
	assert.Equal(t, domain.AnalysisResult{
		BMI:           24.1,
		RiskScore:     domain.RiskMedium,
		DiabetesStage: domain.DiabetesPreDiabetic,
		ObesityStage:  "Normal Weight",
		Warnings:      []string{"w1"},
	}, result)
}

func TestAnalysisClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrSessionExpired))
		}},
		{"bad request", http.StatusBadRequest, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrServerRejected))
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			var sErr *StatusError
			require.True(t, errors.As(err, &sErr))
			assert.Equal(t, http.StatusInternalServerError, sErr.StatusCode)
			assert.Equal(t, "boom", sErr.Body)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				http.Error(w, "boom", tt.status)
			}))
			defer server.Close()

			client := NewAnalysisClient(server.URL, time.Second)
			_, err := client.Analyze(context.Background(), testSession, domain.AnalysisRequest{})
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, 1, calls, "requests must not be retried")
		})
	}
}

func TestAnalysisClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewAnalysisClient(url, time.Second)
	_, err := client.Analyze(context.Background(), testSession, domain.AnalysisRequest{})

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "analyze", tErr.Op)
}

func TestAnalysisClient_Recommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/recommendations/7", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"recId":3,"userId":7,"dietPlan":"Eat well. Drink water.","exercisePlan":"Walk.","lifestyleTips":"Sleep.","riskScore":"Low"}`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, time.Second)
	rec, err := client.Recommendations(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, domain.Recommendation{
		DietPlan:      "Eat well. Drink water.",
		ExercisePlan:  "Walk.",
		LifestyleTips: "Sleep.",
	}, rec)
}

func TestAnalysisClient_RecommendationsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "No recommendations found for this user", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, time.Second)
	_, err := client.Recommendations(context.Background(), testSession)

	var sErr *StatusError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, http.StatusNotFound, sErr.StatusCode)
}

func TestAnalysisClient_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewAnalysisClient(server.URL, time.Second)
	_, err := client.Analyze(context.Background(), testSession, domain.AnalysisRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode analyze response")
}
