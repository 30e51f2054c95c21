package sd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

const sectorSize = 512

// FlatBackend is the trivial image format: sector N at file offset
// N*512, no footer.
type FlatBackend struct {
	f    *os.File
	size int64
}

// NewFlatBackend opens path as a flat raw image.
func NewFlatBackend(path string) (*FlatBackend, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FlatBackend{f: f, size: info.Size()}, nil
}

func (b *FlatBackend) SectorCount() uint32 { return uint32(b.size / sectorSize) }

func (b *FlatBackend) ReadSector(lba uint32, buf []byte) error {
	if uint32(b.size/sectorSize) <= lba {
		for i := range buf {
			buf[i] = 0xFF
		}
		return nil
	}
	_, err := b.f.ReadAt(buf[:sectorSize], int64(lba)*sectorSize)
	return err
}

func (b *FlatBackend) WriteSector(lba uint32, buf []byte) error {
	if uint32(b.size/sectorSize) <= lba {
		return nil // clamp: writes past end are silently dropped (spec.md §7)
	}
	_, err := b.f.WriteAt(buf[:sectorSize], int64(lba)*sectorSize)
	return err
}

func (b *FlatBackend) Close() error { return b.f.Close() }

// vhdFooter is the 512-byte footer present at the end of both fixed
// and dynamic VHD images; all multi-byte fields are big-endian.
type vhdFooter struct {
	diskType   uint32
	dataOffset uint64 // only meaningful for dynamic disks
}

const vhdMagic = "conectix"

func readFooter(f *os.File, size int64) (vhdFooter, bool, error) {
	if size < sectorSize {
		return vhdFooter{}, false, nil
	}
	buf := make([]byte, sectorSize)
	if _, err := f.ReadAt(buf, size-sectorSize); err != nil {
		return vhdFooter{}, false, err
	}
	if string(buf[0:8]) != vhdMagic {
		return vhdFooter{}, false, nil
	}
	return vhdFooter{
		diskType:   binary.BigEndian.Uint32(buf[60:64]),
		dataOffset: binary.BigEndian.Uint64(buf[16:24]),
	}, true, nil
}

// FixedVHDBackend is a VHD image whose data region is a plain flat
// image followed by a 512-byte conectix footer.
type FixedVHDBackend struct {
	f          *os.File
	sectors    uint32
}

func newFixedVHD(f *os.File, size int64) *FixedVHDBackend {
	return &FixedVHDBackend{f: f, sectors: uint32((size - sectorSize) / sectorSize)}
}

func (b *FixedVHDBackend) SectorCount() uint32 { return b.sectors }

func (b *FixedVHDBackend) ReadSector(lba uint32, buf []byte) error {
	if lba >= b.sectors {
		for i := range buf {
			buf[i] = 0xFF
		}
		return nil
	}
	_, err := b.f.ReadAt(buf[:sectorSize], int64(lba)*sectorSize)
	return err
}

func (b *FixedVHDBackend) WriteSector(lba uint32, buf []byte) error {
	if lba >= b.sectors {
		return nil
	}
	_, err := b.f.WriteAt(buf[:sectorSize], int64(lba)*sectorSize)
	return err
}

func (b *FixedVHDBackend) Close() error { return b.f.Close() }

// dynamicHeader is the 1024-byte "dynamic disk header" located via the
// footer's Data Offset.
type dynamicHeader struct {
	tableOffset int64
	maxEntries  uint32
	blockSize   uint32
}

// DynamicVHDBackend implements the sparse, block-allocated VHD format
// (spec.md §4.2's DYNAMIC_VHD paragraph): a Block Allocation Table of
// big-endian uint32 file offsets (in sectors), 0xFFFFFFFF meaning
// "unallocated, reads as zero", with lazy allocation on first write.
type DynamicVHDBackend struct {
	f    *os.File
	hdr  dynamicHeader
	bat  []uint32 // in-memory mirror of the BAT, sector offsets (not byte)
	sectorsPerBlock uint32
	bitmapSectors   uint32
}

func newDynamicVHD(f *os.File, dataOffset uint64) (*DynamicVHDBackend, error) {
	hbuf := make([]byte, 1024)
	if _, err := f.ReadAt(hbuf, int64(dataOffset)); err != nil {
		return nil, err
	}
	hdr := dynamicHeader{
		tableOffset: int64(binary.BigEndian.Uint64(hbuf[16:24])),
		maxEntries:  binary.BigEndian.Uint32(hbuf[28:32]),
		blockSize:   binary.BigEndian.Uint32(hbuf[32:36]),
	}
	if hdr.blockSize == 0 || hdr.blockSize%sectorSize != 0 {
		return nil, fmt.Errorf("sd: invalid dynamic VHD block size %d", hdr.blockSize)
	}
	sectorsPerBlock := hdr.blockSize / sectorSize
	bitmapSectors := (sectorsPerBlock + 8*sectorSize - 1) / (8 * sectorSize)

	bat := make([]uint32, hdr.maxEntries)
	batBuf := make([]byte, 4*hdr.maxEntries)
	if _, err := f.ReadAt(batBuf, hdr.tableOffset); err != nil {
		return nil, err
	}
	for i := range bat {
		bat[i] = binary.BigEndian.Uint32(batBuf[i*4 : i*4+4])
	}

	return &DynamicVHDBackend{
		f: f, hdr: hdr, bat: bat,
		sectorsPerBlock: sectorsPerBlock,
		bitmapSectors:   bitmapSectors,
	}, nil
}

func (b *DynamicVHDBackend) SectorCount() uint32 {
	return uint32(b.hdr.maxEntries) * b.sectorsPerBlock
}

func (b *DynamicVHDBackend) blockFor(lba uint32) (blockIdx uint32, sectorInBlock uint32) {
	return lba / b.sectorsPerBlock, lba % b.sectorsPerBlock
}

func (b *DynamicVHDBackend) ReadSector(lba uint32, buf []byte) error {
	blockIdx, sectorInBlock := b.blockFor(lba)
	if blockIdx >= uint32(len(b.bat)) || b.bat[blockIdx] == 0xFFFFFFFF {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
	offset := int64(b.bat[blockIdx])*sectorSize + int64(b.bitmapSectors)*sectorSize + int64(sectorInBlock)*sectorSize
	_, err := b.f.ReadAt(buf[:sectorSize], offset)
	return err
}

func (b *DynamicVHDBackend) WriteSector(lba uint32, buf []byte) error {
	blockIdx, sectorInBlock := b.blockFor(lba)
	if blockIdx >= uint32(len(b.bat)) {
		return nil // clamp: past the BAT's addressable range (spec.md §7)
	}
	if b.bat[blockIdx] == 0xFFFFFFFF {
		if err := b.allocateBlock(blockIdx); err != nil {
			return err
		}
	}
	offset := int64(b.bat[blockIdx])*sectorSize + int64(b.bitmapSectors)*sectorSize + int64(sectorInBlock)*sectorSize
	_, err := b.f.WriteAt(buf[:sectorSize], offset)
	return err
}

// allocateBlock places a new block at the current end of file
// (displacing the trailing footer), writes an all-ones occupancy
// bitmap and zeroed sector payload, re-appends the footer, and writes
// the BAT entry back to disk.
func (b *DynamicVHDBackend) allocateBlock(blockIdx uint32) error {
	info, err := b.f.Stat()
	if err != nil {
		return err
	}
	footer := make([]byte, sectorSize)
	footerOffset := info.Size() - sectorSize
	if _, err := b.f.ReadAt(footer, footerOffset); err != nil {
		return err
	}

	newBlockSectorOffset := uint32(footerOffset / sectorSize)

	bitmap := make([]byte, int64(b.bitmapSectors)*sectorSize)
	for i := range bitmap {
		bitmap[i] = 0xFF
	}
	if _, err := b.f.WriteAt(bitmap, footerOffset); err != nil {
		return err
	}

	zeros := make([]byte, int64(b.sectorsPerBlock)*sectorSize)
	if _, err := b.f.WriteAt(zeros, footerOffset+int64(len(bitmap))); err != nil {
		return err
	}

	newFooterOffset := footerOffset + int64(len(bitmap)) + int64(len(zeros))
	if _, err := b.f.WriteAt(footer, newFooterOffset); err != nil {
		return err
	}

	b.bat[blockIdx] = newBlockSectorOffset
	entryOffset := b.hdr.tableOffset + int64(blockIdx)*4
	entryBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(entryBuf, newBlockSectorOffset)
	if _, err := b.f.WriteAt(entryBuf, entryOffset); err != nil {
		return err
	}
	return nil
}

func (b *DynamicVHDBackend) Close() error { return b.f.Close() }

// MountImage opens path, sniffs its trailing footer for the VHD magic
// per spec.md §4.2's mount policy, and returns the matching Backend.
// A file with no "conectix" footer is treated as FLAT; an unrecognized
// VHD disk type fails the mount.
func MountImage(path string) (Backend, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	footer, ok, err := readFooter(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	if !ok {
		return &FlatBackend{f: f, size: info.Size()}, nil
	}

	switch footer.diskType {
	case 2:
		return newFixedVHD(f, info.Size()), nil
	case 3:
		backend, err := newDynamicVHD(f, footer.dataOffset)
		if err != nil {
			f.Close()
			return nil, err
		}
		return backend, nil
	default:
		f.Close()
		return nil, errors.New("sd: unrecognized VHD disk type")
	}
}
