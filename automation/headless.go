package automation

import (
	"context"
	"os/exec"
	"time"

	"github.com/mimiclabs/mimic/logger"
	"go.uber.org/zap"
)

// HeadlessDesktop logs desktop actions without driving a GUI. Launching and
// closing applications still shells out, bounded by actionTimeout so a hung
// process can not stall a run forever.
type HeadlessDesktop struct {
	actionTimeout time.Duration
}

var _ DesktopDriver = new(HeadlessDesktop)

func NewHeadlessDesktop(actionTimeout time.Duration) *HeadlessDesktop {
	return &HeadlessDesktop{actionTimeout: actionTimeout}
}

func (d *HeadlessDesktop) Click(x, y int) error {
	logger.Debug("click", zap.Int("x", x), zap.Int("y", y))
	return nil
}

func (d *HeadlessDesktop) DoubleClick(x, y int) error {
	logger.Debug("double click", zap.Int("x", x), zap.Int("y", y))
	return nil
}

func (d *HeadlessDesktop) RightClick(x, y int) error {
	logger.Debug("right click", zap.Int("x", x), zap.Int("y", y))
	return nil
}

func (d *HeadlessDesktop) TypeText(text string) error {
	logger.Debug("type text", zap.Int("chars", len(text)))
	return nil
}

func (d *HeadlessDesktop) PressKey(key string) error {
	logger.Debug("press key", zap.String("key", key))
	return nil
}

func (d *HeadlessDesktop) Hotkey(keys ...string) error {
	logger.Debug("hotkey", zap.Strings("keys", keys))
	return nil
}

func (d *HeadlessDesktop) Scroll(x, y, clicks int) error {
	logger.Debug("scroll", zap.Int("x", x), zap.Int("y", y), zap.Int("clicks", clicks))
	return nil
}

func (d *HeadlessDesktop) MoveMouse(x, y int) error {
	logger.Debug("move mouse", zap.Int("x", x), zap.Int("y", y))
	return nil
}

func (d *HeadlessDesktop) LaunchApp(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.actionTimeout)
	defer cancel()
	logger.Info("launching application", zap.String("app", name))
	return exec.CommandContext(ctx, name).Start()
}

func (d *HeadlessDesktop) CloseApp(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.actionTimeout)
	defer cancel()
	logger.Info("closing application", zap.String("app", name))
	return exec.CommandContext(ctx, "pkill", "-f", name).Run()
}

func (d *HeadlessDesktop) SwitchWindow(title string) error {
	logger.Debug("switch window", zap.String("title", title))
	return nil
}

// HeadlessBrowser logs browser actions without driving a browser.
type HeadlessBrowser struct{}

var _ BrowserDriver = HeadlessBrowser{}

func (HeadlessBrowser) Navigate(url string) error {
	logger.Debug("navigate", zap.String("url", url))
	return nil
}

func (HeadlessBrowser) ClickElement(selector string) error {
	logger.Debug("click element", zap.String("selector", selector))
	return nil
}

func (HeadlessBrowser) FillInput(selector, value string) error {
	logger.Debug("fill input", zap.String("selector", selector))
	return nil
}

func (HeadlessBrowser) SelectOption(selector, value string) error {
	logger.Debug("select option", zap.String("selector", selector), zap.String("value", value))
	return nil
}
