package librespot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		params map[string]string
		want   string
	}{
		{
			name:   "no params",
			path:   "/status",
			params: nil,
			want:   "/status",
		},
		{
			name:   "empty params",
			path:   "/status",
			params: map[string]string{},
			want:   "/status",
		},
		{
			name:   "single param",
			path:   "/metadata/rootlist",
			params: map[string]string{"limit": "50"},
			want:   "/metadata/rootlist?limit=50",
		},
		{
			name:   "multiple params sorted",
			path:   "/metadata/rootlist",
			params: map[string]string{"offset": "50", "limit": "50"},
			want:   "/metadata/rootlist?limit=50&offset=50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildURL(tt.path, tt.params); got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetStatusNoSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	status, err := New(srv.URL).GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status != nil {
		t.Errorf("GetStatus() = %+v, want nil for 204", status)
	}
}

func TestGetTrackNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	track, err := New(srv.URL).GetTrack(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetTrack() error = %v", err)
	}
	if track != nil {
		t.Errorf("GetTrack() = %+v, want nil for 404", track)
	}
}

func TestDaemonError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "something broke", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).GetStatus(context.Background()); err == nil {
		t.Fatal("GetStatus() expected error for 500")
	}
}

func TestGetStatusDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"play_origin": "go-librespot",
			"paused": true,
			"volume": 32,
			"volume_steps": 64,
			"shuffle_context": true,
			"track": {
				"uri": "spotify:track:abc",
				"name": "Song",
				"artist_names": ["Artist"],
				"album_name": "Album",
				"position": 1500,
				"duration": 200000
			}
		}`))
	}))
	defer srv.Close()

	status, err := New(srv.URL).GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status == nil || status.Track == nil {
		t.Fatal("GetStatus() returned nil status or track")
	}
	if !status.Paused || status.Volume != 32 || status.VolumeSteps != 64 || !status.ShuffleContext {
		t.Errorf("status decoded wrong: %+v", status)
	}
	if status.Track.Name != "Song" || status.Track.Position != 1500 {
		t.Errorf("track decoded wrong: %+v", status.Track)
	}
}

func TestPlaySendsBody(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := New(srv.URL).Play(context.Background(), PlayOptions{
		URI:       "spotify:album:xyz",
		SkipToURI: "spotify:track:abc",
	})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if gotPath != "/player/play" {
		t.Errorf("path = %q, want /player/play", gotPath)
	}
	want := `{"uri":"spotify:album:xyz","skip_to_uri":"spotify:track:abc","paused":false}`
	if gotBody != want {
		t.Errorf("body = %q, want %q", gotBody, want)
	}
}

func TestSetRepeatSendsBody(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.SetRepeatContext(context.Background(), true); err != nil {
		t.Fatalf("SetRepeatContext() error = %v", err)
	}
	if gotPath != "/player/repeat_context" || gotBody != `{"repeat_context":true}` {
		t.Errorf("got %s %s", gotPath, gotBody)
	}

	if err := c.SetRepeatTrack(context.Background(), false); err != nil {
		t.Fatalf("SetRepeatTrack() error = %v", err)
	}
	if gotPath != "/player/repeat_track" || gotBody != `{"repeat_track":false}` {
		t.Errorf("got %s %s", gotPath, gotBody)
	}
}
