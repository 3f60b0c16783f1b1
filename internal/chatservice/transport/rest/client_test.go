package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatlink/internal/chatservice"

	"github.com/stretchr/testify/require"
)

type staticCreds struct {
	bearer string
	userID string
}

func (c staticCreds) Bearer() string     { return c.bearer }
func (c staticCreds) ChatUserID() string { return c.userID }

func TestRegister_SendsBodyAndBearer(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"state_message": "success"})
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticCreds{bearer: "tok"}, 0)
	require.NoError(t, err)

	resp, err := client.Register(context.Background(), chatservice.RegisterRequest{
		UserID:   "0812",
		TinodeID: "usr_abc",
		FullName: "Budi",
	})
	require.NoError(t, err)
	require.Equal(t, "success", resp.StateMessage)

	require.Equal(t, "/chat-service/register", gotPath)
	require.Equal(t, "Bearer tok", gotAuth)
	require.Equal(t, map[string]any{
		"user_id":   "0812",
		"tinode_id": "usr_abc",
		"full_name": "Budi",
	}, gotBody)
}

func TestSaveDeviceToken_WireShape(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat-service/save-device-token", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"state_message": "success"})
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticCreds{bearer: "tok"}, 0)
	require.NoError(t, err)

	_, err = client.SaveDeviceToken(context.Background(), chatservice.SaveDeviceTokenRequest{
		RecipientID:   "usr_abc",
		ClientID:      "chat-client",
		Token:         "apns-token",
		Platform:      1,
		NotifPipeline: "A",
	})
	require.NoError(t, err)

	// platform уходит числом, notif_pipeline — строкой.
	require.Equal(t, float64(1), gotBody["platform"])
	require.Equal(t, "A", gotBody["notif_pipeline"])
	require.Equal(t, "usr_abc", gotBody["recipient_id"])
}

func TestGetParticipants_PathAndUserIDHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/chat-service/participants/order-1", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "0812", r.Header.Get("grpc-metadata-userid"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"call_room_id": "call-1",
			"chat_room_id": "chat-1",
			"full_name":    "Driver",
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticCreds{bearer: "tok", userID: "0812"}, 0)
	require.NoError(t, err)

	resp, err := client.GetParticipants(context.Background(), chatservice.GetParticipantsRequest{OrderID: "order-1"})
	require.NoError(t, err)
	require.Equal(t, chatservice.GetParticipantsResponse{
		CallRoomID: "call-1",
		ChatRoomID: "chat-1",
		FullName:   "Driver",
	}, resp)
}

func TestGenerateToken_NoBearerAndStringNumbers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat-service/token/auth", r.URL.Path)
		// Единственная операция без Authorization-заголовка.
		require.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":       "jwt",
			"refresh_token":      "refresh",
			"expires_in":         "1800",
			"refresh_expires_in": "86400",
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticCreds{bearer: "tok"}, 0)
	require.NoError(t, err)

	resp, err := client.GenerateToken(context.Background(), chatservice.GenerateTokenRequest{
		ClientID:     "id",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, chatservice.GenerateTokenResponse{
		AccessToken:      "jwt",
		RefreshToken:     "refresh",
		ExpiresIn:        1800,
		RefreshExpiresIn: 86400,
	}, resp)
}

func TestGenerateToken_BadExpiresInIsParseError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "jwt",
			"expires_in":   "soon",
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticCreds{}, 0)
	require.NoError(t, err)

	_, err = client.GenerateToken(context.Background(), chatservice.GenerateTokenRequest{ClientID: "id"})
	require.ErrorIs(t, err, chatservice.ErrParse)
}

func TestDo_Non2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticCreds{}, 0)
	require.NoError(t, err)

	_, err = client.Register(context.Background(), chatservice.RegisterRequest{UserID: "u"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 401")
	require.NotErrorIs(t, err, chatservice.ErrParse)
}
