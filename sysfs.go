package partitionidentity

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	sysDefaultPath = "/sys"
	// sysfs reports sizes in 512 byte sectors regardless of the device block size
	sysSectorSize = 512
)

// BlockInfo is what the kernel reports about a block device in /sys/class/block.
type BlockInfo struct {
	Name      string // kernel name, e.g. sda1
	Partition int    // partition number, 0 for a whole disk
	PartName  string // partition name from the table, if any
	Size      int64  // in bytes
}

// ReadBlockInfo looks up the device at devicePath in sysfs. Symlinks such as
// /dev/disk/by-uuid/... are followed first. syspath defaults to /sys.
func ReadBlockInfo(devicePath, syspath string) (BlockInfo, error) {
	if syspath == "" {
		syspath = sysDefaultPath
	}
	resolved, err := canonicalize(devicePath)
	if err != nil {
		return BlockInfo{}, err
	}
	name := filepath.Base(resolved)
	blockDir := filepath.Join(syspath, "class", "block", name)
	info, err := os.Stat(blockDir)
	if err != nil {
		return BlockInfo{}, err
	}
	if !info.IsDir() {
		return BlockInfo{}, fmt.Errorf("%s: %w", blockDir, os.ErrNotExist)
	}
	sectors, err := readSysIntValue(filepath.Join(blockDir, "size"))
	if err != nil {
		return BlockInfo{}, err
	}
	bi := BlockInfo{
		Name: name,
		Size: sectors * sysSectorSize,
	}
	partitionInfoFile := filepath.Join(blockDir, "partition")
	if _, err := os.Stat(partitionInfoFile); err == nil {
		number, err := readSysIntValue(partitionInfoFile)
		if err != nil {
			return BlockInfo{}, err
		}
		bi.Partition = int(number)
	}
	// uevent is optional, it only adds the partition name
	if ueventData, err := os.ReadFile(filepath.Join(blockDir, "uevent")); err == nil {
		ue := parseKeyValueLines(ueventData)
		bi.PartName = ue["PARTNAME"]
	}
	return bi, nil
}

func readSysIntValue(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	// trim newline or carriage return
	s := string(data)
	if len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseKeyValueLines parses the contents of key=value lines
// (KEY=VALUE\n...) into a map.
// Lines without '=' are ignored.
func parseKeyValueLines(data []byte) map[string]string {
	m := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		m[key] = val
	}
	return m
}
