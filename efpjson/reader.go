/*
 * reader.go, part of goefp.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package efpjson

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	efp "github.com/rmera/goefp"
)

//ZstdSuffix marks zstd-compressed potential files.
const ZstdSuffix = ".zst"

//Reader reads JSON potential files. It implements efp.PotentialReader.
//Relative names not found in the working directory are looked for in each
//of the Paths, in order. Files ending in ZstdSuffix are decompressed.
type Reader struct {
	Paths []string
}

//NewReader returns a Reader which looks for files in the given paths.
func NewReader(paths ...string) *Reader {
	return &Reader{Paths: paths}
}

func (R *Reader) find(name string) (string, error) {
	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) {
		return name, err
	}
	for _, p := range R.Paths {
		full := filepath.Join(p, name)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return name, fs.ErrNotExist
}

//ReadPotential reads the fragment templates in the file name.
func (R *Reader) ReadPotential(name string) ([]*efp.Fragment, error) {
	const funcname = "efpjson.Reader.ReadPotential"
	path, err := R.find(name)
	if err != nil {
		return nil, efp.WrapError(efp.FileNotFound, funcname, err)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, efp.WrapError(efp.FileNotFound, funcname, err)
		}
		return nil, efp.WrapError(efp.SyntaxError, funcname, err)
	}
	defer f.Close()
	var in io.Reader = f
	if strings.HasSuffix(path, ZstdSuffix) {
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, efp.WrapError(efp.SyntaxError, funcname, err)
		}
		defer d.Close()
		in = d
	}
	frags, err := Decode(in)
	if err != nil {
		var e *efp.Error
		if errors.As(err, &e) {
			e.Decorate(funcname + ": " + path)
		}
		return nil, err
	}
	return frags, nil
}

//WriteFile writes the templates in frags to the file name, compressed
//with zstd if the name ends in ZstdSuffix.
func WriteFile(name string, frags []*efp.Fragment) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := f.Close(); err == nil {
			err = err2
		}
	}()
	if !strings.HasSuffix(name, ZstdSuffix) {
		return Encode(f, frags)
	}
	w, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err = Encode(w, frags); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

//FileList returns the newline-delimited list of potential files for the
//fragment types in names. As in efpmd, names ending in "_l" are library
//fragments, whose parameters are in fraglib, other fragments are in userlib.
//The file for a type is its lowercase name, without the "_l" suffix, plus ".json".
//Each file appears once. Fragments in fraglib files keep the "_l" suffix in
//their names, so they match the names given to efp.New.
func FileList(names []string, fraglib, userlib string) string {
	seen := make(map[string]bool)
	var files []string
	for _, n := range names {
		dir := userlib
		base := strings.ToLower(n)
		if strings.HasSuffix(base, "_l") {
			dir = fraglib
			base = strings.TrimSuffix(base, "_l")
		}
		file := filepath.Join(dir, base+".json")
		if !seen[file] {
			seen[file] = true
			files = append(files, file)
		}
	}
	return strings.Join(files, "\n")
}
