package clients_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-videohub/internal/clients"
	"github.com/bionicotaku/lingo-services-videohub/internal/infrastructure/configloader"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/events"
	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

func discard() log.Logger { return log.NewStdLogger(io.Discard) }

func TestHTTPProcessorTrigger_PostsJob(t *testing.T) {
	var got events.ProcessorJob
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	trigger, cleanup, err := clients.NewHTTPProcessorTrigger(context.Background(), &configloader.Processor{
		URL:     srv.URL + "/process",
		Timeout: configloader.Duration(time.Second),
	}, discard())
	require.NoError(t, err)
	defer cleanup()

	job := events.ProcessorJob{VideoID: uuid.New(), S3Key: "videos/a.mp4", Bucket: "clips"}
	require.NoError(t, trigger.Trigger(context.Background(), job))
	require.Equal(t, "/process", gotPath)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, job, got)
}

func TestHTTPProcessorTrigger_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	trigger, cleanup, err := clients.NewHTTPProcessorTrigger(context.Background(), &configloader.Processor{URL: srv.URL + "/process"}, discard())
	require.NoError(t, err)
	defer cleanup()

	err = trigger.Trigger(context.Background(), events.ProcessorJob{VideoID: uuid.New(), S3Key: "k", Bucket: "b"})
	require.Error(t, err)
}

func TestHTTPProcessorTrigger_RejectsRelativeURL(t *testing.T) {
	_, _, err := clients.NewHTTPProcessorTrigger(context.Background(), &configloader.Processor{URL: "/process"}, discard())
	require.Error(t, err)
}

type stubPublisher struct {
	queue string
	msg   amqp.Publishing
	err   error
}

func (s *stubPublisher) PublishWithContext(_ context.Context, _ string, key string, _ bool, _ bool, msg amqp.Publishing) error {
	s.queue = key
	s.msg = msg
	return s.err
}

func TestAMQPProcessorTrigger_PublishesPersistentJSON(t *testing.T) {
	pub := &stubPublisher{}
	trigger := clients.NewAMQPProcessorTrigger(pub, "video_processing_queue", discard())

	job := events.ProcessorJob{VideoID: uuid.New(), S3Key: "videos/a.mp4", Bucket: "clips"}
	require.NoError(t, trigger.Trigger(context.Background(), job))
	require.Equal(t, "video_processing_queue", pub.queue)
	require.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	require.Equal(t, "application/json", pub.msg.ContentType)

	var decoded events.ProcessorJob
	require.NoError(t, json.Unmarshal(pub.msg.Body, &decoded))
	require.Equal(t, job, decoded)

	pub.err = errors.New("channel closed")
	require.Error(t, trigger.Trigger(context.Background(), job))
}

func TestNewProcessorTrigger_DefaultsToHTTP(t *testing.T) {
	trigger, cleanup, err := clients.NewProcessorTrigger(context.Background(), &configloader.Processor{URL: "http://localhost:3000/process"}, discard())
	require.NoError(t, err)
	defer cleanup()
	_, ok := trigger.(*clients.HTTPProcessorTrigger)
	require.True(t, ok)
}

func TestAnalyticsClient(t *testing.T) {
	id := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/"+id.String(), func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"videoId":"` + id.String() + `","views":7,"likes":3,"watchTimeSeconds":0,"lastUpdated":"2026-01-02T03:04:05Z"}`))
	})
	mux.HandleFunc("/api/analytics/view", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, id.String(), body["videoId"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"View recorded","views":8}`))
	})
	mux.HandleFunc("/api/analytics/like", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, cleanup, err := clients.NewAnalyticsClient(context.Background(), &configloader.Dashboard{AnalyticsURL: srv.URL}, discard())
	require.NoError(t, err)
	defer cleanup()

	snap, err := client.GetAnalytics(context.Background(), id)
	require.NoError(t, err)
	require.EqualValues(t, 7, snap.Views)
	require.EqualValues(t, 3, snap.Likes)

	views, err := client.RecordView(context.Background(), id)
	require.NoError(t, err)
	require.EqualValues(t, 8, views)

	_, err = client.RecordLike(context.Background(), id)
	require.Error(t, err)

	_, err = client.GetAnalytics(context.Background(), uuid.New())
	require.Error(t, err, "404 from unknown path")
}

func TestUploaderClient_ListAndUpload(t *testing.T) {
	id := uuid.New()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/videos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]po.Video{{ID: id, Title: "Demo", Status: po.VideoStatusPending}})
	})
	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Demo", r.FormValue("title"))
		require.Equal(t, "about", r.FormValue("description"))
		file, header, err := r.FormFile("video")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		require.Equal(t, "clip.mp4", header.Filename)
		require.Equal(t, "movie", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Video uploaded successfully","videoId":"` + id.String() + `","status":"PENDING"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, cleanup, err := clients.NewUploaderClient(context.Background(), &configloader.Dashboard{UploaderURL: srv.URL}, discard())
	require.NoError(t, err)
	defer cleanup()

	videos, err := client.ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, id, videos[0].ID)

	reply, err := client.Upload(context.Background(), strings.NewReader("movie"), "clip.mp4", "Demo", "about")
	require.NoError(t, err)
	require.Equal(t, id, reply.VideoID)
	require.Equal(t, po.VideoStatusPending, reply.Status)
}

func TestUploaderClient_UploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Title is required"}`))
	}))
	defer srv.Close()

	client, cleanup, err := clients.NewUploaderClient(context.Background(), &configloader.Dashboard{UploaderURL: srv.URL}, discard())
	require.NoError(t, err)
	defer cleanup()

	_, err = client.Upload(context.Background(), strings.NewReader("x"), "a.mp4", "", "")
	require.Error(t, err)
}

func TestUploaderClient_GetVideo(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/api/videos/"+id.String() {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"video not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(po.Video{ID: id, Title: "Demo", Status: po.VideoStatusCompleted})
	}))
	defer srv.Close()

	client, cleanup, err := clients.NewUploaderClient(context.Background(), &configloader.Dashboard{UploaderURL: srv.URL}, discard())
	require.NoError(t, err)
	defer cleanup()

	video, err := client.GetVideo(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Demo", video.Title)
	require.Equal(t, po.VideoStatusCompleted, video.Status)

	_, err = client.GetVideo(context.Background(), uuid.New())
	require.Error(t, err)
}
