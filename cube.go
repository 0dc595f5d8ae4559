/*
 * cube.go, part of gocube.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Conversions
const (
	A2Bohr = 1.889725989
	Bohr2A = 1 / 1.889725989
)

//GeomEpsilon is the absolute tolerance, in Bohr, used when comparing
//origins and step vectors of two grids.
const GeomEpsilon = 1e-6

//A map from atomic number to element symbol. Note that just the elements
//likely to show up in a density cube are present.
var symbolFromZ = map[int]string{
	1: "H", 2: "He", 3: "Li", 4: "Be", 5: "B", 6: "C", 7: "N", 8: "O",
	9: "F", 10: "Ne", 11: "Na", 12: "Mg", 13: "Al", 14: "Si", 15: "P",
	16: "S", 17: "Cl", 18: "Ar", 19: "K", 20: "Ca", 25: "Mn", 26: "Fe",
	27: "Co", 29: "Cu", 30: "Zn", 34: "Se", 35: "Br", 53: "I",
}

//Atom represents one atom record of a cube file. The coordinates are
//always in Bohr, regardless of the units declared in the file.
type Atom struct {
	Number int     //atomic number
	Symbol string  //empty if the atomic number is not in the table
	Charge float64 //the nuclear charge given in the file, normally == Number
	Coords [3]float64
}

//Grid is one volumetric scalar field read from a cube file. All lengths are
//in Bohr. A Grid is never modified after it is built, so it is safe to share
//among goroutines.
type Grid struct {
	name   string //the file it came from, or whatever the caller chose
	titles [2]string
	origin [3]float64
	axes   *mat.Dense //3x3, row i is the step vector of axis i
	counts [3]int
	values []float64 //flat, x slowest, z fastest
	atoms  []*Atom
}

//New assembles a Grid from its parts and verifies the grid invariants:
//positive voxel counts, non-zero step vectors and exactly Nx*Ny*Nz values.
//The given values slice is kept by the Grid, and must not be modified
//afterwards. Everything is taken to be in Bohr.
func New(name string, origin [3]float64, axes [3][3]float64, counts [3]int, values []float64) (*Grid, error) {
	for i, v := range counts {
		if v <= 0 {
			return nil, FileError{fmt.Sprintf("voxel count for axis %d is %d, must be positive", i, v), name, []string{"New"}, true}
		}
	}
	for i, v := range axes {
		if v[0] == 0 && v[1] == 0 && v[2] == 0 {
			return nil, FileError{fmt.Sprintf("step vector for axis %d is zero", i), name, []string{"New"}, true}
		}
	}
	if n := counts[0] * counts[1] * counts[2]; len(values) != n {
		return nil, FileError{fmt.Sprintf("got %d values for a %dx%dx%d grid, need %d", len(values), counts[0], counts[1], counts[2], n), name, []string{"New"}, true}
	}
	g := new(Grid)
	g.name = name
	g.titles = [2]string{"gocube grid", ""}
	g.origin = origin
	g.axes = mat.NewDense(3, 3, []float64{
		axes[0][0], axes[0][1], axes[0][2],
		axes[1][0], axes[1][1], axes[1][2],
		axes[2][0], axes[2][1], axes[2][2],
	})
	g.counts = counts
	g.values = values
	return g, nil
}

//Name returns the identifier the grid was read with, normally a file name.
func (G *Grid) Name() string {
	return G.name
}

//Titles returns the two free-text title lines of the cube file.
func (G *Grid) Titles() (string, string) {
	return G.titles[0], G.titles[1]
}

//Origin returns the Cartesian position of voxel (0,0,0), in Bohr.
func (G *Grid) Origin() [3]float64 {
	return G.origin
}

//Axis returns the step vector of the i-th axis, in Bohr. It panics if
//i is not 0, 1 or 2, as asking for any other axis is a bug in the caller.
func (G *Grid) Axis(i int) [3]float64 {
	return [3]float64{G.axes.At(i, 0), G.axes.At(i, 1), G.axes.At(i, 2)}
}

//Axes returns a copy of the 3x3 step-vector matrix, row i being the step
//vector of axis i.
func (G *Grid) Axes() *mat.Dense {
	return mat.DenseCopyOf(G.axes)
}

//Counts returns the number of voxels along each axis.
func (G *Grid) Counts() [3]int {
	return G.counts
}

//NVoxels returns the total number of voxels in the grid.
func (G *Grid) NVoxels() int {
	return G.counts[0] * G.counts[1] * G.counts[2]
}

//Atoms returns the atom records of the cube file. The returned slice is the
//grid's own, so the caller should not modify it.
func (G *Grid) Atoms() []*Atom {
	return G.atoms
}

//VoxelVolume returns the volume represented by one voxel, in Bohr^3, i.e.
//the absolute value of the determinant of the step-vector matrix.
func (G *Grid) VoxelVolume() float64 {
	return math.Abs(mat.Det(G.axes))
}

//Value returns the density at the voxel with flat index i. Voxels are
//stored with x as the slowest index and z as the fastest, the order in
//which the cube format serializes them.
func (G *Grid) Value(i int) float64 {
	return G.values[i]
}

//At returns the density at voxel (ix, iy, iz).
func (G *Grid) At(ix, iy, iz int) float64 {
	return G.values[(ix*G.counts[1]+iy)*G.counts[2]+iz]
}

//VoxelIndexes returns the (ix, iy, iz) indexes of the voxel with flat
//index i. It is the inverse of the storage order used by Value.
func (G *Grid) VoxelIndexes(i int) (int, int, int) {
	nz := G.counts[2]
	ny := G.counts[1]
	return i / (ny * nz), (i / nz) % ny, i % nz
}

//Position returns the Cartesian position of voxel (ix, iy, iz), in Bohr:
//the origin plus ix, iy and iz times the respective step vectors.
func (G *Grid) Position(ix, iy, iz int) [3]float64 {
	var r [3]float64
	fx, fy, fz := float64(ix), float64(iy), float64(iz)
	for j := 0; j < 3; j++ {
		r[j] = G.origin[j] + fx*G.axes.At(0, j) + fy*G.axes.At(1, j) + fz*G.axes.At(2, j)
	}
	return r
}
