package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/winfsp/cgofuse/fuse"

	photofs "github.com/zbierak/ipa/internal/fs"
)

// runMount builds the device registry and mounts PhotoFS at mountPoint,
// blocking until SIGINT/SIGTERM, then unmounting.
func runMount(mountPoint string) error {
	if err := os.MkdirAll(mountPoint, 0o755); err != nil {
		return fmt.Errorf("create mount point %s: %w", mountPoint, err)
	}

	reg, err := buildRegistry()
	if err != nil {
		return fmt.Errorf("enumerate devices: %w", err)
	}
	if len(reg.Names()) == 0 {
		fmt.Println("ipa: no attached devices with a readable photo database were found")
	}

	pfs := photofs.NewPhotoFS(reg)
	host := fuse.NewFileSystemHost(pfs)

	opts := []string{
		"-o", fmt.Sprintf("uid=%d", os.Getuid()),
		"-o", fmt.Sprintf("gid=%d", os.Getgid()),
		"-o", "fsname=ipa",
		"-o", "subtype=ipa",
		"-o", "ro",
		"-o", "entry_timeout=0.0",
		"-o", "attr_timeout=0.0",
		"-o", "negative_timeout=0.0",
	}
	if runtime.GOOS == "darwin" {
		opts = append(opts, "-o", "nobrowse")
	}

	fmt.Printf("Mounting ipa at %s...\n", mountPoint)

	mountDone := make(chan bool, 1)
	go func() {
		mountDone <- host.Mount(mountPoint, opts)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case ok := <-mountDone:
		if !ok {
			return fmt.Errorf("mount failed")
		}
		return nil
	case <-sig:
		fmt.Printf("\nUnmounting %s...\n", mountPoint)
		if !host.Unmount() {
			fmt.Printf("Warning: unmount failed; run manually: umount %s\n", mountPoint)
		}
		<-mountDone
		return nil
	}
}
