package automation

// DesktopDriver performs mouse, keyboard and window actions on the host.
type DesktopDriver interface {
	Click(x, y int) error
	DoubleClick(x, y int) error
	RightClick(x, y int) error
	TypeText(text string) error
	PressKey(key string) error
	Hotkey(keys ...string) error
	Scroll(x, y, clicks int) error
	MoveMouse(x, y int) error
	LaunchApp(name string) error
	CloseApp(name string) error
	SwitchWindow(title string) error
}

// BrowserDriver performs actions against the active browser window.
type BrowserDriver interface {
	Navigate(url string) error
	ClickElement(selector string) error
	FillInput(selector, value string) error
	SelectOption(selector, value string) error
}

// FileDriver performs filesystem actions.
type FileDriver interface {
	OpenFile(path string) error
	SaveFile(path, content string) error
	MoveFile(src, dst string) error
	RenameFile(src, dst string) error
}
