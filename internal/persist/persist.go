// Package persist encodes and decodes a RandomManager's packed state
// vector to and from disk: magic header, version byte, currentIndex,
// each generator's state words in catalog order, and a CRC64 trailer
// for corruption detection. Modeled on calvinalkan/agent-task's
// cacheMagic/cacheVersionNum binary-cache header idiom.
package persist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc64"
	"os"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

const (
	magic        = "DRND"
	formatVersion byte = 1
	headerSize         = len(magic) + 1 + 4 // magic + version + currentIndex(uint32)
	trailerSize        = 8                  // CRC64
)

var crcTable = crc64.MakeTable(crc64.ISO)

// Errors specific to the packed-state file format.
var (
	ErrInvalidMagic    = errors.New("persist: invalid state file magic")
	ErrVersionMismatch = errors.New("persist: unsupported state file version")
	ErrCorrupt         = errors.New("persist: state file failed checksum")
	ErrTooSmall        = errors.New("persist: state file too small")
)

// Save encodes vec (as returned by Manager.SaveState) and atomically
// writes it to path, holding an exclusive advisory lock on a sibling
// ".lock" file for the duration of the write.
func Save(path string, vec []uint64) error {
	unlock, err := acquireLock(path)
	if err != nil {
		return fmt.Errorf("persist: acquiring lock: %w", err)
	}
	defer unlock()

	buf := make([]byte, headerSize+8*len(vec)+trailerSize)
	copy(buf[0:4], magic)
	buf[4] = formatVersion
	if len(vec) == 0 {
		return fmt.Errorf("persist: %w: empty state vector", ErrTooSmall)
	}
	binary.LittleEndian.PutUint32(buf[5:9], uint32(vec[0]))

	for i, w := range vec[1:] {
		off := headerSize + 8*i
		binary.LittleEndian.PutUint64(buf[off:off+8], w)
	}

	payload := buf[:headerSize+8*(len(vec)-1)]
	checksum := crc64.Checksum(payload, crcTable)
	binary.LittleEndian.PutUint64(buf[len(payload):len(payload)+trailerSize], checksum)

	return atomic.WriteFile(path, bytes.NewReader(buf[:len(payload)+trailerSize]))
}

// Load reads and validates a file written by Save, returning the packed
// vector [currentIndex, gen0.state…, gen1.state…, …].
func Load(path string) ([]uint64, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the --state-file flag
	if err != nil {
		return nil, fmt.Errorf("persist: reading state file: %w", err)
	}

	if len(data) < headerSize+trailerSize {
		return nil, ErrTooSmall
	}
	if string(data[0:4]) != magic {
		return nil, ErrInvalidMagic
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, data[4], formatVersion)
	}

	payload := data[:len(data)-trailerSize]
	wantChecksum := binary.LittleEndian.Uint64(data[len(payload):])
	if crc64.Checksum(payload, crcTable) != wantChecksum {
		return nil, ErrCorrupt
	}

	body := payload[headerSize:]
	if len(body)%8 != 0 {
		return nil, fmt.Errorf("%w: body not a multiple of 8 bytes", ErrCorrupt)
	}

	currentIndex := uint64(binary.LittleEndian.Uint32(payload[5:9]))
	vec := make([]uint64, 0, 1+len(body)/8)
	vec = append(vec, currentIndex)
	for off := 0; off < len(body); off += 8 {
		vec = append(vec, binary.LittleEndian.Uint64(body[off:off+8]))
	}
	return vec, nil
}

// acquireLock takes an exclusive advisory lock on path+".lock", blocking
// until it is available, and returns a function that releases it.
func acquireLock(path string) (func(), error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // sibling of a caller-chosen path
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("locking: %w", err)
	}
	return func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		_ = f.Close()
	}, nil
}
