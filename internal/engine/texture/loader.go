package texture

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/splitview/internal/logger"
)

// CheckerScheme names a procedural checker source: "checker" or "checker:N".
const CheckerScheme = "checker"

// maxFetchBytes bounds remote downloads.
const maxFetchBytes = 32 << 20

// Handle is the pending result of a Load.
type Handle struct {
	source string
	done   chan struct{}
	img    *image.RGBA
	err    error
}

// Source returns what the handle was loaded from.
func (h *Handle) Source() string { return h.source }

// Done is closed once the load has finished either way.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Result returns the loaded image without blocking. ok is false while the
// load is still in flight.
func (h *Handle) Result() (img *image.RGBA, ok bool, err error) {
	select {
	case <-h.done:
		return h.img, true, h.err
	default:
		return nil, false, nil
	}
}

// Wait blocks until the load finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (*image.RGBA, error) {
	select {
	case <-h.done:
		return h.img, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Handle) finish(img *image.RGBA, err error) {
	h.img, h.err = img, err
	close(h.done)
}

// Loader fetches and decodes images in the background.
type Loader struct {
	client *http.Client
	wg     sync.WaitGroup
}

// NewLoader creates a loader. client is used for http(s) sources; nil means
// http.DefaultClient.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client}
}

// Load starts loading source and returns immediately. Sources are a checker
// source, an http(s) URL or a file path. Failures are logged and reported
// through the handle.
func (l *Loader) Load(ctx context.Context, source string) *Handle {
	h := &Handle{source: source, done: make(chan struct{})}

	if cells, ok := parseChecker(source); ok {
		h.finish(Checker(cells, CheckerDark, CheckerLight), nil)
		return h
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.fetch(ctx, source)
		if err != nil {
			logger.Warn("texture load failed", zap.String("source", source), zap.Error(err))
		} else {
			logger.Debug("texture loaded",
				zap.String("source", source),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
		}
		h.finish(img, err)
	}()
	return h
}

// Wait blocks until every started load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) fetch(ctx context.Context, source string) (*image.RGBA, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = l.download(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
}

func parseChecker(source string) (int, bool) {
	if source == CheckerScheme {
		return 2, true
	}
	rest, ok := strings.CutPrefix(source, CheckerScheme+":")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
