//go:build windows

package console

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// ShowWindow commands.
const (
	swHide    = 0
	swShow    = 5
	swRestore = 9
)

// iconResourceID is the application icon compiled into the executable.
const iconResourceID = 1

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	user32   = windows.NewLazySystemDLL("user32.dll")

	procGetConsoleWindow    = kernel32.NewProc("GetConsoleWindow")
	procSetConsoleTitleW    = kernel32.NewProc("SetConsoleTitleW")
	procGetModuleHandleW    = kernel32.NewProc("GetModuleHandleW")
	procSetConsoleIcon      = kernel32.NewProc("SetConsoleIcon")
	procShowWindow          = user32.NewProc("ShowWindow")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procLoadIconW           = user32.NewProc("LoadIconW")
)

var errNoConsoleWindow = errors.New("process has no console window")

// WindowsHost implements Host with the Win32 console and window APIs.
type WindowsHost struct{}

// NewHost returns the host for the running platform.
func NewHost() Host {
	return WindowsHost{}
}

func (WindowsHost) CursorAtOrigin() (bool, error) {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return false, fmt.Errorf("failed to get stdout handle: %w", err)
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return false, fmt.Errorf("failed to read console buffer: %w", err)
	}
	return info.CursorPosition.X == 0 && info.CursorPosition.Y == 0, nil
}

func (WindowsHost) SetTitle(title string) error {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	if r, _, e := procSetConsoleTitleW.Call(uintptr(unsafe.Pointer(p))); r == 0 {
		return fmt.Errorf("SetConsoleTitleW: %w", e)
	}
	return nil
}

func (WindowsHost) SetVisible(visible bool) error {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return errNoConsoleWindow
	}
	cmd := uintptr(swHide)
	if visible {
		cmd = swRestore
	}
	procShowWindow.Call(hwnd, cmd)
	return nil
}

// SetIcon uses SetConsoleIcon, an undocumented export that older and
// newer kernel32 builds may lack.
func (WindowsHost) SetIcon() error {
	if err := procSetConsoleIcon.Find(); err != nil {
		return fmt.Errorf("SetConsoleIcon: %w", errors.ErrUnsupported)
	}
	module, _, _ := procGetModuleHandleW.Call(0)
	icon, _, e := procLoadIconW.Call(module, uintptr(iconResourceID))
	if icon == 0 {
		return fmt.Errorf("LoadIconW: %w", e)
	}
	if r, _, e := procSetConsoleIcon.Call(icon); r == 0 {
		return fmt.Errorf("SetConsoleIcon: %w", e)
	}
	return nil
}

func (WindowsHost) RestoreWindow(title string) (bool, error) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return false, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	if hwnd == 0 {
		return false, nil
	}
	procShowWindow.Call(hwnd, swShow)
	procShowWindow.Call(hwnd, swRestore)
	procSetForegroundWindow.Call(hwnd)
	return true, nil
}
