//go:build windows

package lnk

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	clsidShellLink  = ole.NewGUID("{00021401-0000-0000-C000-000000000046}")
	iidIShellLinkW  = ole.NewGUID("{000214F9-0000-0000-C000-000000000046}")
	iidIPersistFile = ole.NewGUID("{0000010B-0000-0000-C000-000000000046}")
	errNilInterface = errors.New("shell returned a nil interface")
	hresultFalse    = uintptr(0x1)
)

// iShellLinkWVtbl follows the IShellLinkW declaration order in shobjidl.h.
type iShellLinkWVtbl struct {
	ole.IUnknownVtbl
	GetPath             uintptr
	GetIDList           uintptr
	SetIDList           uintptr
	GetDescription      uintptr
	SetDescription      uintptr
	GetWorkingDirectory uintptr
	SetWorkingDirectory uintptr
	GetArguments        uintptr
	SetArguments        uintptr
	GetHotkey           uintptr
	SetHotkey           uintptr
	GetShowCmd          uintptr
	SetShowCmd          uintptr
	GetIconLocation     uintptr
	SetIconLocation     uintptr
	SetRelativePath     uintptr
	Resolve             uintptr
	SetPath             uintptr
}

type iPersistFileVtbl struct {
	ole.IUnknownVtbl
	GetClassID    uintptr
	IsDirty       uintptr
	Load          uintptr
	Save          uintptr
	SaveCompleted uintptr
	GetCurFile    uintptr
}

// ShellWriter creates shortcuts through the Windows shell's IShellLinkW and
// IPersistFile interfaces. Each Write initializes COM on a locked OS thread
// and tears it down before returning.
type ShellWriter struct{}

// Write implements Writer. The file is only touched by IPersistFile::Save.
func (ShellWriter) Write(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	path, err := filepath.Abs(spec.Path)
	if err != nil {
		return err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		// S_FALSE: already initialized on this thread, still needs the matching uninitialize
		if !errors.As(err, &oleErr) || oleErr.Code() != hresultFalse {
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unk, err := ole.CreateInstance(clsidShellLink, iidIShellLinkW)
	if err != nil {
		return fmt.Errorf("create ShellLink: %w", err)
	}
	if unk == nil {
		return errNilInterface
	}
	defer unk.Release()

	link := (*iShellLinkWVtbl)(unsafe.Pointer(unk.RawVTable))
	self := uintptr(unsafe.Pointer(unk))

	setters := []struct {
		name   string
		method uintptr
		value  string
		extra  []uintptr
	}{
		{"SetPath", link.SetPath, spec.Target, nil},
		{"SetArguments", link.SetArguments, spec.Arguments, nil},
		{"SetIconLocation", link.SetIconLocation, spec.IconLocation, []uintptr{0}},
		{"SetWorkingDirectory", link.SetWorkingDirectory, spec.WorkingDir, nil},
	}
	for _, s := range setters {
		if s.value == "" {
			continue
		}
		if err := callWithString(s.method, self, s.value, s.extra...); err != nil {
			return fmt.Errorf("IShellLinkW.%s: %w", s.name, err)
		}
	}

	var persist *ole.IUnknown
	if err := hresult(syscall.SyscallN(link.QueryInterface, self,
		uintptr(unsafe.Pointer(iidIPersistFile)),
		uintptr(unsafe.Pointer(&persist)))); err != nil {
		return fmt.Errorf("query IPersistFile: %w", err)
	}
	if persist == nil {
		return errNilInterface
	}
	defer persist.Release()

	pf := (*iPersistFileVtbl)(unsafe.Pointer(persist.RawVTable))
	// fRemember = TRUE
	if err := callWithString(pf.Save, uintptr(unsafe.Pointer(persist)), path, 1); err != nil {
		return fmt.Errorf("IPersistFile.Save: %w", err)
	}

	return nil
}

// callWithString calls a COM method whose first argument is a wide string.
func callWithString(method, self uintptr, s string, extra ...uintptr) error {
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return err
	}
	args := append([]uintptr{self, uintptr(unsafe.Pointer(p))}, extra...)
	err = hresult(syscall.SyscallN(method, args...))
	runtime.KeepAlive(p)
	return err
}

func hresult(hr, _ uintptr, _ syscall.Errno) error {
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}
