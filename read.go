/*
 * read.go, part of gocube.
 *
 * Copyright 2024 Raul Mera <raul_dot_mera_changeforat_usach_dot_cl>
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

package cube

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//ReadFile reads the cube file name and returns the grid in it. Files ending
//in .gz or .zst are decompressed on the fly, so big cubes can be stored
//compressed (they compress rather well, being mostly zeros in text form).
func ReadFile(name string) (*Grid, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var in io.Reader = bufio.NewReader(f)
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(in)
		if err != nil {
			return nil, FileError{"can't open gzip stream: " + err.Error(), name, []string{"ReadFile"}, true}
		}
		defer gz.Close()
		in = gz
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(in)
		if err != nil {
			return nil, FileError{"can't open zstd stream: " + err.Error(), name, []string{"ReadFile"}, true}
		}
		defer zr.Close()
		in = zr
	}
	g, err := Read(in, name)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return g, nil
}

//Read decodes a cube file from in and returns the grid in it. The name is
//only used to identify the grid in errors and results. The decoder is
//strict: an unsupported header variant, or a number of density values other
//than the one the header declares, is an error, never silently fixed.
func Read(in io.Reader, name string) (*Grid, error) {
	r := bufio.NewReader(in)
	var titles [2]string
	for i := 0; i < 2; i++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, FileError{"file ends before the header is complete", name, []string{"Read"}, true}
		}
		titles[i] = strings.TrimRight(line, "\r\n")
	}
	natoms, origin, err := countAndVector(r, name)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	//A negative atom count means the file carries dataset ids (e.g. an MO
	//cube with several orbitals). Those aren't densities, so we refuse them
	//instead of guessing which dataset the caller wanted.
	if natoms < 0 {
		return nil, FileError{"negative atom count: cube files with dataset ids are not supported", name, []string{"Read"}, true}
	}
	var axes [3][3]float64
	var counts [3]int
	angstrom := 0
	for i := 0; i < 3; i++ {
		n, v, err := countAndVector(r, name)
		if err != nil {
			return nil, errDecorate(err, "Read")
		}
		if n < 0 {
			angstrom++
			n = -n
		}
		counts[i] = n
		axes[i] = v
	}
	if angstrom != 0 && angstrom != 3 {
		return nil, FileError{"mixed Angstrom and Bohr axis declarations in header", name, []string{"Read"}, true}
	}
	scale := 1.0
	if angstrom == 3 {
		scale = A2Bohr
	}
	for i := range origin {
		origin[i] *= scale
	}
	for i := range axes {
		for j := range axes[i] {
			axes[i][j] *= scale
		}
	}
	atoms := make([]*Atom, 0, natoms)
	for i := 0; i < natoms; i++ {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return nil, FileError{fmt.Sprintf("file ends at atom %d of %d", i+1, natoms), name, []string{"Read"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, FileError{fmt.Sprintf("malformed atom line %q", strings.TrimSpace(line)), name, []string{"Read"}, true}
		}
		a := new(Atom)
		errs := make([]error, 5)
		a.Number, errs[0] = strconv.Atoi(fields[0])
		a.Charge, errs[1] = strconv.ParseFloat(fields[1], 64)
		for j := 0; j < 3; j++ {
			a.Coords[j], errs[j+2] = strconv.ParseFloat(fields[j+2], 64)
			a.Coords[j] *= scale
		}
		for _, e := range errs {
			if e != nil {
				return nil, FileError{fmt.Sprintf("malformed atom line %q: %s", strings.TrimSpace(line), e.Error()), name, []string{"Read"}, true}
			}
		}
		a.Symbol = symbolFromZ[a.Number] //no error checking, just empty for unknown elements
		atoms = append(atoms, a)
	}
	nvalues := counts[0] * counts[1] * counts[2]
	values := make([]float64, 0, nvalues)
	for {
		line, err := r.ReadString('\n')
		for _, field := range strings.Fields(line) {
			v, err2 := strconv.ParseFloat(field, 64)
			if err2 != nil {
				return nil, FileError{fmt.Sprintf("can't parse density value %q: %s", field, err2.Error()), name, []string{"Read"}, true}
			}
			values = append(values, v)
		}
		if err != nil {
			if err != io.EOF {
				return nil, FileError{"reading density values: " + err.Error(), name, []string{"Read"}, true}
			}
			break
		}
	}
	if len(values) != nvalues {
		return nil, FileError{fmt.Sprintf("the header declares %d density values but the file has %d", nvalues, len(values)), name, []string{"Read"}, true}
	}
	g, err := New(name, origin, axes, counts, values)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	g.titles = titles
	g.atoms = atoms
	return g, nil
}

//countAndVector decodes one header line made of an integer followed by at
//least 3 floats, the layout shared by the origin and the 3 axis lines.
func countAndVector(r *bufio.Reader, name string) (int, [3]float64, error) {
	var v [3]float64
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return 0, v, FileError{"file ends before the header is complete", name, []string{"countAndVector"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, v, FileError{fmt.Sprintf("malformed header line %q", strings.TrimSpace(line)), name, []string{"countAndVector"}, true}
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, v, FileError{fmt.Sprintf("malformed header line %q: %s", strings.TrimSpace(line), err.Error()), name, []string{"countAndVector"}, true}
	}
	for i := 0; i < 3; i++ {
		v[i], err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return 0, v, FileError{fmt.Sprintf("malformed header line %q: %s", strings.TrimSpace(line), err.Error()), name, []string{"countAndVector"}, true}
		}
	}
	return n, v, nil
}
