// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"encoding/binary"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// Watch starts an inotify watcher on the gallery manifest and
// replaces the Source's catalog whenever the manifest changes. The
// returned stop function ends the watcher and closes the inotify fd;
// it is safe to call more than once.
//
// The watcher monitors the manifest's parent directory for
// IN_CLOSE_WRITE and IN_MOVED_TO events on the manifest filename.
// Watching the directory rather than the file catches atomic renames:
// editors that write a temp file and rename it create a new inode,
// which a file-level watch on the old inode would miss.
func Watch(dir, manifestPath string, source *Source) (func(), error) {
	if manifestPath == "" {
		manifestPath = filepath.Join(dir, DefaultManifestName)
	}
	absoluteManifest, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, err
	}

	watchDir := filepath.Dir(absoluteManifest)
	filename := filepath.Base(absoluteManifest)

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}

	if _, err := unix.InotifyAddWatch(fd, watchDir, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, err
	}

	stopChannel := make(chan struct{})
	go watchLoop(fd, dir, manifestPath, filename, source, stopChannel)

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		close(stopChannel)
	}
	return stop, nil
}

// watchLoop polls the inotify fd for manifest changes and reloads the
// catalog. Uses poll(2) with a 100ms timeout for responsive
// stop-channel checking. After detecting a change it waits briefly
// and drains queued events, coalescing rapid successive writes into
// one reload.
func watchLoop(fd int, dir, manifestPath, filename string, source *Source, stopChannel <-chan struct{}) {
	defer unix.Close(fd)

	buffer := make([]byte, 4096)

	for {
		select {
		case <-stopChannel:
			return
		default:
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// Fatal poll error; the watcher exits and the gallery
			// degrades to static mode.
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		if !inotifyEventMatches(buffer[:bytesRead], filename) {
			continue
		}

		time.Sleep(50 * time.Millisecond)
		drainEvents(fd, buffer)

		catalog, err := Load(dir, manifestPath)
		if err != nil {
			// The manifest may be mid-write or briefly absent during
			// an atomic replace. Skip; the completed write delivers
			// another event.
			continue
		}
		source.Replace(catalog)
	}
}

// inotifyEventMatches checks whether any inotify event in the buffer
// names the target file. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func inotifyEventMatches(buffer []byte, targetFilename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}

		if nameLength > 0 {
			nameBytes := buffer[offset+unix.SizeofInotifyEvent : offset+eventSize]
			if nullTerminated(nameBytes) == targetFilename {
				return true
			}
		}

		offset += eventSize
	}
	return false
}

// nullTerminated extracts a string from a null-padded byte slice,
// stopping at the first null byte.
func nullTerminated(data []byte) string {
	for index, value := range data {
		if value == 0 {
			return string(data[:index])
		}
	}
	return string(data)
}

// drainEvents reads and discards pending inotify events after the
// debounce sleep.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
