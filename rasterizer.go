package pitchdeck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-pitchdeck/internal/fileutil"
	"github.com/alnah/go-pitchdeck/internal/process"
)

// bufferMounter mounts an export buffer in an offscreen page.
// Abstracted so the export pipeline can be tested without a browser.
type bufferMounter interface {
	Mount(ctx context.Context, html string) (surfaceBuffer, error)
	Close() error
}

// surfaceBuffer is a mounted export buffer.
type surfaceBuffer interface {
	// Lookup returns the handle for a slide index, or false if the buffer
	// does not contain it.
	Lookup(index int) (surfaceHandle, bool)
	Close() error
}

// surfaceHandle captures one mounted slide as a PNG image at RasterScale.
type surfaceHandle interface {
	Capture(ctx context.Context) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ bufferMounter = (*rodMounter)(nil)
	_ surfaceBuffer = (*rodBuffer)(nil)
	_ surfaceHandle = (*rodHandle)(nil)
)

// surfaceSelector matches every slide root in the export buffer.
const surfaceSelector = "[data-slide-index]"

// surfaceBoxJS returns the document-relative position of an element.
const surfaceBoxJS = `function () {
	const r = this.getBoundingClientRect();
	return { x: r.left + window.scrollX, y: r.top + window.scrollY };
}`

// rodMounter mounts export buffers in headless Chrome via go-rod.
// Rod downloads Chromium on first run if none is found. Not safe for
// concurrent use; ExporterPool gives each worker its own mounter.
type rodMounter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodMounter(timeout time.Duration) *rodMounter {
	return &rodMounter{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (m *rodMounter) ensureBrowser() error {
	if m.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containers
	if os.Getenv("CI") == "true" || bin != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Cleanup()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		m.killLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	m.browser = browser
	m.launcher = l
	return nil
}

// Mount writes html to a temp file, loads it at slide viewport size on a
// white background, and indexes the slide roots by data-slide-index.
func (m *rodMounter) Mount(ctx context.Context, html string) (surfaceBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.ensureBrowser(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	buf := &rodBuffer{page: page, cleanup: cleanup, handles: make(map[int]*rodHandle)}
	if err := m.prepare(ctx, buf); err != nil {
		_ = buf.Close()
		return nil, err
	}
	return buf, nil
}

func (m *rodMounter) prepare(ctx context.Context, buf *rodBuffer) error {
	// Page load timeout from context or default
	timeout := m.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	page := buf.page
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             SlideWidth,
		Height:            SlideHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("%w: setting viewport: %v", ErrPageLoad, err)
	}
	err = proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 255, G: 255, B: 255},
	}.Call(page)
	if err != nil {
		return fmt.Errorf("%w: setting background: %v", ErrPageLoad, err)
	}

	els, err := page.Context(ctx).Elements(surfaceSelector)
	if err != nil {
		return fmt.Errorf("%w: locating slides: %v", ErrPageLoad, err)
	}
	for _, el := range els {
		attr, err := el.Attribute("data-slide-index")
		if err != nil || attr == nil {
			continue
		}
		idx, err := strconv.Atoi(*attr)
		if err != nil {
			continue
		}
		buf.handles[idx] = &rodHandle{page: page, el: el}
	}
	return nil
}

// Close releases browser resources and kills the Chrome process group so
// no renderer children survive the exporter.
func (m *rodMounter) Close() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.killLauncher(m.launcher)
		m.launcher = nil
	}
	return err
}

func (m *rodMounter) killLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// rodBuffer is one loaded export buffer page.
type rodBuffer struct {
	page    *rod.Page
	cleanup func()
	handles map[int]*rodHandle
}

func (b *rodBuffer) Lookup(index int) (surfaceHandle, bool) {
	h, ok := b.handles[index]
	if !ok {
		return nil, false
	}
	return h, true
}

func (b *rodBuffer) Close() error {
	if b.cleanup != nil {
		b.cleanup()
		b.cleanup = nil
	}
	if b.page == nil {
		return nil
	}
	err := b.page.Close()
	b.page = nil
	return err
}

// rodHandle is one slide root inside a rodBuffer.
type rodHandle struct {
	page *rod.Page
	el   *rod.Element
}

// Capture clips a page screenshot to the slide box. Element screenshots
// are not used because they ignore the clip scale.
func (h *rodHandle) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	box, err := h.el.Context(ctx).Eval(surfaceBoxJS)
	if err != nil {
		return nil, fmt.Errorf("%w: measuring slide: %v", ErrRasterize, err)
	}

	img, err := h.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.Value.Get("x").Num(),
			Y:      box.Value.Get("y").Num(),
			Width:  SlideWidth,
			Height: SlideHeight,
			Scale:  RasterScale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrRasterize)
	}
	return img, nil
}
