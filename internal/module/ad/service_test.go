package ad

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adcraft/server/internal/model"
	"github.com/adcraft/server/internal/module/ad/prompt"
	apperrors "github.com/adcraft/server/internal/shared/errors"
)

// fakeTextGenerator scripts the remote completion API for tests.
type fakeTextGenerator struct {
	content    string
	fragments  []string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (f *fakeTextGenerator) Model() string { return "test-model" }

func (f *fakeTextGenerator) GenerateText(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func (f *fakeTextGenerator) GenerateTextStream(_ context.Context, system, user string, onFragment func(string) error) error {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	for _, frag := range f.fragments {
		if err := onFragment(frag); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeTextGenerator) HealthCheck(_ context.Context) error { return nil }

func newTestService(text *fakeTextGenerator) *Service {
	return NewService(prompt.NewRegistry(), text, zap.NewNop(), nil)
}

func testRequest() *model.GenerationRequest {
	return &model.GenerationRequest{
		ProductName: "Widget",
		Category:    []string{"tools"},
		AdType:      model.DefaultAdType,
		AdTone:      model.DefaultAdTone,
	}
}

func TestService_Generate(t *testing.T) {
	t.Run("returns populated response", func(t *testing.T) {
		text := &fakeTextGenerator{content: "Buy the Widget today!"}
		svc := newTestService(text)

		resp, err := svc.Generate(context.Background(), testRequest())
		require.NoError(t, err)

		assert.Equal(t, "Buy the Widget today!", resp.AdContent)
		assert.Equal(t, "Widget", resp.ProductInfo.ProductName)
		assert.Equal(t, model.AdTypeSocialMedia, resp.AdSettings.AdType)
		assert.Equal(t, model.AdToneFriendly, resp.AdSettings.AdTone)
		assert.Equal(t, "test-model", resp.ModelUsed)
		assert.NotEmpty(t, resp.RequestID)
		assert.False(t, resp.Timestamp.IsZero())
		assert.GreaterOrEqual(t, resp.GenerationTime, 0.0)
	})

	t.Run("system prompt comes from the registry", func(t *testing.T) {
		text := &fakeTextGenerator{content: "ok"}
		svc := newTestService(text)

		req := testRequest()
		req.AdType = model.AdTypeEmail
		req.AdTone = model.AdToneUrgent

		_, err := svc.Generate(context.Background(), req)
		require.NoError(t, err)

		want, err := prompt.NewRegistry().Compose(model.AdTypeEmail, model.AdToneUrgent)
		require.NoError(t, err)
		assert.Equal(t, want, text.lastSystem)
	})

	t.Run("wraps remote failure", func(t *testing.T) {
		text := &fakeTextGenerator{err: errors.New("upstream boom")}
		svc := newTestService(text)

		_, err := svc.Generate(context.Background(), testRequest())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrGeneration))
		assert.Contains(t, err.Error(), "upstream boom")
	})

	t.Run("template miss surfaces without remote call", func(t *testing.T) {
		text := &fakeTextGenerator{content: "ok"}
		svc := newTestService(text)

		req := testRequest()
		req.AdType = "billboard"

		_, err := svc.Generate(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrTemplateNotFound))
		assert.Zero(t, text.calls)
	})
}

func TestService_GenerateStream(t *testing.T) {
	collect := func(ch <-chan model.StreamEvent) []model.StreamEvent {
		var events []model.StreamEvent
		for ev := range ch {
			events = append(events, ev)
		}
		return events
	}

	t.Run("processing first then streaming then completed", func(t *testing.T) {
		text := &fakeTextGenerator{fragments: []string{"Hello ", "world", "!"}}
		svc := newTestService(text)

		events := collect(svc.GenerateStream(context.Background(), testRequest()))
		require.GreaterOrEqual(t, len(events), 3)

		assert.Equal(t, model.StreamProcessing, events[0].Status)

		last := events[len(events)-1]
		assert.Equal(t, model.StreamCompleted, last.Status)
		assert.Equal(t, "Hello world!", last.FullContent)
		assert.Equal(t, "test-model", last.ModelUsed)
		require.NotNil(t, last.ProductInfo)
		assert.Equal(t, "Widget", last.ProductInfo.ProductName)

		for _, ev := range events[1 : len(events)-1] {
			assert.Equal(t, model.StreamStreaming, ev.Status)
		}
	})

	t.Run("exactly one terminal event", func(t *testing.T) {
		text := &fakeTextGenerator{fragments: []string{"a", "b"}}
		svc := newTestService(text)

		terminal := 0
		for _, ev := range collect(svc.GenerateStream(context.Background(), testRequest())) {
			if ev.IsTerminal() {
				terminal++
			}
		}
		assert.Equal(t, 1, terminal)
	})

	t.Run("progress is monotone and capped", func(t *testing.T) {
		// 700 characters across fragments pushes past the cap.
		frags := make([]string, 7)
		for i := range frags {
			frags[i] = strings.Repeat("x", 100)
		}
		text := &fakeTextGenerator{fragments: frags}
		svc := newTestService(text)

		prev := -1.0
		for _, ev := range collect(svc.GenerateStream(context.Background(), testRequest())) {
			if ev.Status != model.StreamStreaming {
				continue
			}
			require.NotNil(t, ev.Progress)
			assert.GreaterOrEqual(t, *ev.Progress, prev)
			assert.LessOrEqual(t, *ev.Progress, 95.0)
			prev = *ev.Progress
		}
		assert.Equal(t, 95.0, prev)
	})

	t.Run("fragments echo as content", func(t *testing.T) {
		text := &fakeTextGenerator{fragments: []string{"one", "two"}}
		svc := newTestService(text)

		var got []string
		for _, ev := range collect(svc.GenerateStream(context.Background(), testRequest())) {
			if ev.Status == model.StreamStreaming {
				got = append(got, ev.Content)
			}
		}
		assert.Equal(t, []string{"one", "two"}, got)
	})

	t.Run("remote failure ends with error event", func(t *testing.T) {
		text := &fakeTextGenerator{
			fragments: []string{"partial"},
			err:       errors.New("connection reset"),
		}
		svc := newTestService(text)

		events := collect(svc.GenerateStream(context.Background(), testRequest()))
		require.NotEmpty(t, events)

		last := events[len(events)-1]
		assert.Equal(t, model.StreamError, last.Status)
		assert.Equal(t, "generation_failed", last.ErrorCode)
		assert.Contains(t, last.Message, "connection reset")
	})

	t.Run("template miss ends with error event without remote call", func(t *testing.T) {
		text := &fakeTextGenerator{fragments: []string{"never"}}
		svc := newTestService(text)

		req := testRequest()
		req.AdTone = "sarcastic"

		events := collect(svc.GenerateStream(context.Background(), req))
		require.Len(t, events, 2)
		assert.Equal(t, model.StreamProcessing, events[0].Status)
		assert.Equal(t, model.StreamError, events[1].Status)
		assert.Equal(t, "template_not_found", events[1].ErrorCode)
		assert.Zero(t, text.calls)
	})

	t.Run("cancelled consumer stops the stream", func(t *testing.T) {
		frags := make([]string, 100)
		for i := range frags {
			frags[i] = "chunk"
		}
		text := &fakeTextGenerator{fragments: frags}
		svc := newTestService(text)

		ctx, cancel := context.WithCancel(context.Background())
		ch := svc.GenerateStream(ctx, testRequest())

		// Read a couple of events, then walk away.
		<-ch
		<-ch
		cancel()

		select {
		case _, ok := <-ch:
			if ok {
				// Drain whatever was in flight; the channel must close.
				for range ch {
				}
			}
		case <-time.After(2 * time.Second):
			t.Fatal("stream did not close after cancellation")
		}
	})
}

func TestFlattenProduct(t *testing.T) {
	price := 19.99
	discounted := 14.5

	t.Run("renders fields in declaration order", func(t *testing.T) {
		req := &model.GenerationRequest{
			ProductName:     "Widget",
			BrandName:       "Acme",
			Category:        []string{"tools", "garden"},
			Description:     "A sturdy widget",
			Price:           &price,
			DiscountedPrice: &discounted,
			ProductURL:      "https://example.com/widget",
			ImageURL:        "https://example.com/widget.png",
		}

		got := flattenProduct(req)
		want := strings.Join([]string{
			"product_name: Widget",
			"brand_name: Acme",
			"category: ['tools', 'garden']",
			"description: A sturdy widget",
			"price: 19.99",
			"discounted_price: 14.5",
			"product_url: https://example.com/widget",
			"image_url: https://example.com/widget.png",
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("omits absent fields entirely", func(t *testing.T) {
		req := &model.GenerationRequest{
			ProductName: "Widget",
			Category:    []string{"tools"},
		}

		got := flattenProduct(req)
		assert.Equal(t, "product_name: Widget\ncategory: ['tools']", got)
		assert.NotContains(t, got, "price")
		assert.NotContains(t, got, "brand_name")
	})
}
