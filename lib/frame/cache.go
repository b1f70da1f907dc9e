// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"container/list"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// cacheDomainKey is the BLAKE3 keyed-hash domain for frame cache
// keys. Domain separation keeps frame keys from colliding with any
// other keyed hashing in the process. The bytes are the ASCII
// encoding of the domain name, zero-padded to 32 bytes.
var cacheDomainKey = [32]byte{
	'l', 'u', 'm', 'e', 'n', '.', 'f', 'r', 'a', 'm', 'e', '.',
	'c', 'a', 'c', 'h', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Key computes the cache key for a rendered frame. The key covers the
// source path, its modification time, and the render geometry, so any
// change to the file or the terminal size produces a distinct key.
func Key(path string, modTime time.Time, columns, rows int) string {
	hasher, err := blake3.NewKeyed(cacheDomainKey[:])
	if err != nil {
		panic("frame: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var geometry [24]byte
	binary.BigEndian.PutUint64(geometry[0:8], uint64(modTime.UnixNano()))
	binary.BigEndian.PutUint64(geometry[8:16], uint64(columns))
	binary.BigEndian.PutUint64(geometry[16:24], uint64(rows))

	hasher.Write([]byte(path))
	hasher.Write([]byte{0})
	hasher.Write(geometry[:])

	return hex.EncodeToString(hasher.Sum(nil))
}

// Cache stores rendered frames in memory with LRU eviction and an
// optional compressed disk tier. The zero value is not usable; use
// NewCache.
type Cache struct {
	mutex      sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int

	// directory is the disk tier root, empty when the disk tier is
	// disabled.
	directory   string
	compression CompressionTag
}

type cacheEntry struct {
	key   string
	frame Frame
}

// NewCache creates a frame cache holding at most maxEntries frames in
// memory. When directory is non-empty, evicted and stored frames are
// also written there with the given compression and survive restarts.
func NewCache(maxEntries int, directory string, compression CompressionTag) (*Cache, error) {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	return &Cache{
		entries:     make(map[string]*list.Element),
		order:       list.New(),
		maxEntries:  maxEntries,
		directory:   directory,
		compression: compression,
	}, nil
}

// Get returns the cached frame for a key, checking memory first and
// then the disk tier. A disk hit is promoted into memory.
func (cache *Cache) Get(key string) (Frame, bool) {
	cache.mutex.Lock()
	if element, ok := cache.entries[key]; ok {
		cache.order.MoveToFront(element)
		frame := element.Value.(*cacheEntry).frame
		cache.mutex.Unlock()
		return frame, true
	}
	cache.mutex.Unlock()

	if cache.directory == "" {
		return Frame{}, false
	}
	frame, err := cache.readDisk(key)
	if err != nil {
		return Frame{}, false
	}
	cache.store(key, frame)
	return frame, true
}

// Put stores a rendered frame under a key, writing through to the
// disk tier when one is configured.
func (cache *Cache) Put(key string, frame Frame) error {
	cache.store(key, frame)
	if cache.directory == "" {
		return nil
	}
	return cache.writeDisk(key, frame)
}

// Contains reports whether a key is present in the memory tier. Used
// by preloading to skip work without touching LRU order.
func (cache *Cache) Contains(key string) bool {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	_, ok := cache.entries[key]
	return ok
}

func (cache *Cache) store(key string, frame Frame) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if element, ok := cache.entries[key]; ok {
		cache.order.MoveToFront(element)
		element.Value.(*cacheEntry).frame = frame
		return
	}

	element := cache.order.PushFront(&cacheEntry{key: key, frame: frame})
	cache.entries[key] = element

	for cache.order.Len() > cache.maxEntries {
		oldest := cache.order.Back()
		cache.order.Remove(oldest)
		delete(cache.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Disk entry format: 1-byte compression tag, 4-byte big-endian
// uncompressed size, compressed CBOR-encoded frame.

func (cache *Cache) writeDisk(key string, frame Frame) error {
	encoded, err := cbor.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	payload, tag, err := Compress(encoded, cache.compression)
	if err != nil {
		return fmt.Errorf("compressing frame: %w", err)
	}

	record := make([]byte, 5+len(payload))
	record[0] = byte(tag)
	binary.BigEndian.PutUint32(record[1:5], uint32(len(encoded)))
	copy(record[5:], payload)

	path := cache.diskPath(key)
	temp := path + ".tmp"
	if err := os.WriteFile(temp, record, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	// Atomic rename so concurrent readers never see a partial entry.
	if err := os.Rename(temp, path); err != nil {
		os.Remove(temp)
		return fmt.Errorf("committing cache entry: %w", err)
	}
	return nil
}

func (cache *Cache) readDisk(key string) (Frame, error) {
	record, err := os.ReadFile(cache.diskPath(key))
	if err != nil {
		return Frame{}, err
	}
	if len(record) < 5 {
		return Frame{}, fmt.Errorf("cache entry truncated: %d bytes", len(record))
	}

	tag := CompressionTag(record[0])
	uncompressedSize := int(binary.BigEndian.Uint32(record[1:5]))

	encoded, err := Decompress(record[5:], tag, uncompressedSize)
	if err != nil {
		return Frame{}, err
	}

	var frame Frame
	if err := cbor.Unmarshal(encoded, &frame); err != nil {
		return Frame{}, fmt.Errorf("decoding frame: %w", err)
	}
	return frame, nil
}

func (cache *Cache) diskPath(key string) string {
	return filepath.Join(cache.directory, key+".frame")
}
