/*
 * compressed.go, part of gofill.
 *
 * Copyright 2026 The gofill Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//compression returns the compression suffix of fname ("gz", "zst" or "") and
//the file name without it.
func compression(fname string) (string, string) {
	ext := strings.ToLower(filepath.Ext(fname))
	switch ext {
	case ".gz", ".zst":
		return ext[1:], strings.TrimSuffix(fname, filepath.Ext(fname))
	}
	return "", fname
}

//format returns the lowercase extension of fname, without the dot and
//ignoring any compression suffix.
func format(fname string) string {
	_, plain := compression(fname)
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(plain)), ".")
}

//multiCloser closes a decompressor (or compressor) and then the file under it.
type multiCloser struct {
	io.Reader
	io.Writer
	closers []func() error
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//prepSource opens fname and returns a reader that will read data from the file, either 'as is'
//or decompressing first, depending on the file extension (.gz for gzip, .zst for zstd).
func prepSource(fname string) (io.ReadCloser, error) {
	comp, _ := compression(fname)
	fhandle, err := os.Open(fname)
	if err != nil {
		return nil, &CError{err.Error(), []string{"os.Open", "prepSource"}, err}
	}
	reader := bufio.NewReader(fhandle)
	switch comp {
	case "gz":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, &CError{err.Error(), []string{"gzip.NewReader", "prepSource"}, err}
		}
		return &multiCloser{Reader: gz, closers: []func() error{gz.Close, fhandle.Close}}, nil
	case "zst":
		zs, err := zstd.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, &CError{err.Error(), []string{"zstd.NewReader", "prepSource"}, err}
		}
		zclose := func() error { zs.Close(); return nil }
		return &multiCloser{Reader: zs, closers: []func() error{zclose, fhandle.Close}}, nil
	}
	return &multiCloser{Reader: reader, closers: []func() error{fhandle.Close}}, nil
}

//prepTarget creates fname and returns a writer that will write data, crude or
//compressed, depending on the file extension (.gz for gzip, .zst for zstd).
//Closing the writer flushes everything and closes the file.
func prepTarget(fname string) (io.WriteCloser, error) {
	comp, _ := compression(fname)
	fhandle, err := os.Create(fname)
	if err != nil {
		return nil, &CError{err.Error(), []string{"os.Create", "prepTarget"}, err}
	}
	buf := bufio.NewWriter(fhandle)
	switch comp {
	case "gz":
		gz := gzip.NewWriter(buf)
		return &multiCloser{Writer: gz, closers: []func() error{gz.Close, buf.Flush, fhandle.Close}}, nil
	case "zst":
		zs, err := zstd.NewWriter(buf)
		if err != nil {
			fhandle.Close()
			return nil, &CError{err.Error(), []string{"zstd.NewWriter", "prepTarget"}, err}
		}
		return &multiCloser{Writer: zs, closers: []func() error{zs.Close, buf.Flush, fhandle.Close}}, nil
	}
	return &multiCloser{Writer: buf, closers: []func() error{buf.Flush, fhandle.Close}}, nil
}
