package pdf

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer turns an HTML document into paginated PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Chrome prints through a headless browser. The browser is launched lazily on
// first use and shared across requests.
type Chrome struct {
	once    sync.Once
	browser *rod.Browser
	err     error
}

func NewChrome() *Chrome { return &Chrome{} }

func (c *Chrome) connect() {
	u, err := launcher.New().Headless(true).Launch()
	if err != nil {
		c.err = fmt.Errorf("launch browser: %w", err)
		return
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		c.err = fmt.Errorf("connect browser: %w", err)
		return
	}
	c.browser = browser
}

// A4 with 20mm margins, matching the print stylesheet.
func printOptions() *proto.PagePrintToPDF {
	f := func(v float64) *float64 { return &v }
	return &proto.PagePrintToPDF{
		PaperWidth:      f(8.27),
		PaperHeight:     f(11.69),
		MarginTop:       f(0.79),
		MarginBottom:    f(0.79),
		MarginLeft:      f(0.79),
		MarginRight:     f(0.79),
		PrintBackground: true,
	}
}

func (c *Chrome) Render(ctx context.Context, html string) ([]byte, error) {
	c.once.Do(c.connect)
	if c.err != nil {
		return nil, c.err
	}
	page, err := c.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	stream, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return data, nil
}

// Close shuts down the shared browser, if one was launched.
func (c *Chrome) Close() error {
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}
