package executor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mimiclabs/mimic/automation"
	"github.com/mimiclabs/mimic/model"
)

// dispatcher routes a step to its driver. The action set is closed; adding
// an action type means extending the switch, which the default arm guards.
type dispatcher struct {
	desktop automation.DesktopDriver
	browser automation.BrowserDriver
	files   automation.FileDriver
}

func NewDispatcher(desktop automation.DesktopDriver, browser automation.BrowserDriver, files automation.FileDriver) *dispatcher {
	return &dispatcher{desktop: desktop, browser: browser, files: files}
}

func (d *dispatcher) Dispatch(actionType model.ActionType, target, value string) error {
	switch actionType {
	case model.ACTION_TYPE_CLICK:
		x, y, err := coords(target)
		if err != nil {
			return err
		}
		return d.desktop.Click(x, y)
	case model.ACTION_TYPE_DOUBLE_CLICK:
		x, y, err := coords(target)
		if err != nil {
			return err
		}
		return d.desktop.DoubleClick(x, y)
	case model.ACTION_TYPE_RIGHT_CLICK:
		x, y, err := coords(target)
		if err != nil {
			return err
		}
		return d.desktop.RightClick(x, y)
	case model.ACTION_TYPE_TYPE:
		return d.desktop.TypeText(firstNonEmpty(value, target))
	case model.ACTION_TYPE_PRESS_KEY:
		return d.desktop.PressKey(firstNonEmpty(target, value))
	case model.ACTION_TYPE_HOTKEY:
		return d.desktop.Hotkey(strings.Split(firstNonEmpty(target, value), "+")...)
	case model.ACTION_TYPE_SCROLL:
		x, y, err := coords(target)
		if err != nil {
			return err
		}
		clicks := 3
		if value != "" {
			clicks, err = strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid scroll amount %q", value)
			}
		}
		return d.desktop.Scroll(x, y, clicks)
	case model.ACTION_TYPE_MOVE_MOUSE:
		x, y, err := coords(target)
		if err != nil {
			return err
		}
		return d.desktop.MoveMouse(x, y)
	case model.ACTION_TYPE_LAUNCH_APP:
		return d.desktop.LaunchApp(firstNonEmpty(target, value))
	case model.ACTION_TYPE_CLOSE_APP:
		return d.desktop.CloseApp(firstNonEmpty(target, value))
	case model.ACTION_TYPE_SWITCH_WINDOW:
		return d.desktop.SwitchWindow(firstNonEmpty(target, value))
	case model.ACTION_TYPE_NAVIGATE:
		return d.browser.Navigate(firstNonEmpty(target, value))
	case model.ACTION_TYPE_CLICK_ELEMENT:
		return d.browser.ClickElement(firstNonEmpty(target, value))
	case model.ACTION_TYPE_FILL_FORM:
		return d.browser.FillInput(target, value)
	case model.ACTION_TYPE_SELECT_DROPDOWN:
		return d.browser.SelectOption(target, value)
	case model.ACTION_TYPE_OPEN_FILE:
		return d.files.OpenFile(firstNonEmpty(target, value))
	case model.ACTION_TYPE_SAVE_FILE:
		return d.files.SaveFile(target, value)
	case model.ACTION_TYPE_MOVE_FILE:
		return d.files.MoveFile(target, value)
	case model.ACTION_TYPE_RENAME_FILE:
		return d.files.RenameFile(target, value)
	}
	return fmt.Errorf("Unknown action type: %s", actionType)
}

func coords(target string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(target), ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinates %q", target)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid coordinates %q", target)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid coordinates %q", target)
	}
	return x, y, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
