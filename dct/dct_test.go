/*
 * dct_test.go, part of gocube
 *
 * Copyright 2024 Raul Mera Adasme <raul_dot_mera_changeforat_usach_dot_cl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package dct

import (
	"fmt"
	"math"
	"strings"
	"testing"

	cube "github.com/rmera/gocube"
)

var unitAxes = [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

//a cubic grid with origin 0 and 1-Bohr voxels, for building test cases.
func grid(Te *testing.T, name string, counts [3]int, values []float64) *cube.Grid {
	g, err := cube.New(name, [3]float64{0, 0, 0}, unitAxes, counts, values)
	if err != nil {
		Te.Fatal(err)
	}
	return g
}

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}

//One unit of charge moves from voxel (1,1,1) to voxel (0,0,0): qCT must be
//1 e, the centroids the two voxel positions, and DCT the diagonal, sqrt(3)
//Bohr, reported in Angstrom.
func TestTwoVoxelTransfer(Te *testing.T) {
	ground := make([]float64, 8)
	excited := make([]float64, 8)
	ground[7] = 1.0  //voxel (1,1,1)
	excited[0] = 1.0 //voxel (0,0,0)
	g := grid(Te, "ground", [3]int{2, 2, 2}, ground)
	e := grid(Te, "excited", [3]int{2, 2, 2}, excited)
	want := math.Sqrt(3) * cube.Bohr2A
	for _, cpus := range []int{1, 2, 4, 8} {
		o := DefaultOptions()
		o.Cpus(cpus)
		res, err := Compute(g, e, o)
		if err != nil {
			Te.Fatal(err)
		}
		if relDiff(res.QCT, 1.0) > 1e-12 {
			Te.Errorf("%d cpus: qCT should be 1 e, got %v", cpus, res.QCT)
		}
		if res.RPlus != [3]float64{0, 0, 0} {
			Te.Errorf("%d cpus: R+ should be the origin, got %v", cpus, res.RPlus)
		}
		for j := 0; j < 3; j++ {
			if relDiff(res.RMinus[j], cube.Bohr2A) > 1e-12 {
				Te.Errorf("%d cpus: R- should be (1,1,1) Bohr in Angstrom, got %v", cpus, res.RMinus)
			}
		}
		if relDiff(res.DCT, want) > 1e-12 {
			Te.Errorf("%d cpus: DCT should be %v A, got %v", cpus, want, res.DCT)
		}
		fmt.Println("two-voxel transfer:", res)
	}
}

//An Options built as its zero value (rather than with DefaultOptions) asks
//for 0 goroutines; the reduction must still run, on a single worker, not
//silently merge nothing.
func TestZeroValueOptions(Te *testing.T) {
	ground := make([]float64, 8)
	excited := make([]float64, 8)
	ground[7] = 1.0
	excited[0] = 1.0
	g := grid(Te, "ground", [3]int{2, 2, 2}, ground)
	e := grid(Te, "excited", [3]int{2, 2, 2}, excited)
	res, err := Compute(g, e, new(Options))
	if err != nil {
		Te.Fatal(err)
	}
	if relDiff(res.QCT, 1.0) > 1e-12 {
		Te.Errorf("qCT should be 1 e, got %v", res.QCT)
	}
}

//a smooth, deterministic density pair over a grid big enough for the
//chunking to matter. The total density is the same in both states.
func densityPair(counts [3]int) (gr, ex []float64) {
	n := counts[0] * counts[1] * counts[2]
	gr = make([]float64, n)
	ex = make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		gr[i] = 1.0 + 0.5*math.Sin(0.1*x)
	}
	//the excited state is the ground state read backwards, so both
	//integrate to exactly the same total, just placed differently.
	for i := 0; i < n; i++ {
		ex[i] = gr[n-1-i]
	}
	return gr, ex
}

//The combined moments, and everything derived from them, must not depend
//on the number of goroutines, beyond summation-order rounding.
func TestWorkerDeterminism(Te *testing.T) {
	counts := [3]int{24, 20, 16}
	grv, exv := densityPair(counts)
	g := grid(Te, "ground", counts, grv)
	e := grid(Te, "excited", counts, exv)
	o := DefaultOptions()
	o.Cpus(1)
	ref, err := Reduce(g, e, o)
	if err != nil {
		Te.Fatal(err)
	}
	refres, err := ref.Result("g", "e")
	if err != nil {
		Te.Fatal(err)
	}
	for _, cpus := range []int{2, 4, 8} {
		o := DefaultOptions()
		o.Cpus(cpus)
		m, err := Reduce(g, e, o)
		if err != nil {
			Te.Fatal(err)
		}
		if relDiff(m.QPlus, ref.QPlus) > 1e-9 || relDiff(m.QMinus, ref.QMinus) > 1e-9 {
			Te.Errorf("%d cpus: charges differ from the 1-cpu run: %v %v vs %v %v", cpus, m.QPlus, m.QMinus, ref.QPlus, ref.QMinus)
		}
		res, err := m.Result("g", "e")
		if err != nil {
			Te.Fatal(err)
		}
		if relDiff(res.QCT, refres.QCT) > 1e-9 || relDiff(res.DCT, refres.DCT) > 1e-9 {
			Te.Errorf("%d cpus: descriptors differ from the 1-cpu run: %v vs %v", cpus, res, refres)
		}
	}
}

//For a genuine redistribution of a fixed total density, the gained and
//lost charges must match.
func TestChargeBalance(Te *testing.T) {
	counts := [3]int{10, 10, 10}
	grv, exv := densityPair(counts)
	g := grid(Te, "ground", counts, grv)
	e := grid(Te, "excited", counts, exv)
	m, err := Reduce(g, e)
	if err != nil {
		Te.Fatal(err)
	}
	if m.QPlus <= 0 || m.QMinus <= 0 {
		Te.Fatalf("expected charge on both sides, got %v and %v", m.QPlus, m.QMinus)
	}
	if math.Abs(m.QPlus-m.QMinus)/m.QPlus > 1e-6 {
		Te.Errorf("gained and lost charge unbalanced: %v vs %v", m.QPlus, m.QMinus)
	}
}

//Identical grids mean no density change anywhere: that is a legitimate
//outcome, reported as a ZeroTransferError, never as a 0/0 centroid.
func TestZeroTransfer(Te *testing.T) {
	values := make([]float64, 8)
	for i := range values {
		values[i] = 0.25
	}
	g := grid(Te, "ground", [3]int{2, 2, 2}, values)
	e := grid(Te, "excited", [3]int{2, 2, 2}, append([]float64{}, values...))
	res, err := Compute(g, e)
	if err == nil {
		Te.Fatalf("identical grids should not produce a result, got %v", res)
	}
	zt, ok := err.(ZeroTransferError)
	if !ok {
		Te.Fatalf("expected a ZeroTransferError, got %T: %v", err, err)
	}
	if zt.Critical() {
		Te.Error("a zero transfer should not be critical")
	}
	fmt.Println("zero transfer, as expected:", zt)

	//one-sided change: density only appears, nothing is depleted, so the
	//loss centroid is the undefined one.
	excited := append([]float64{}, values...)
	excited[3] += 1.0
	e2 := grid(Te, "excited2", [3]int{2, 2, 2}, excited)
	_, err = Compute(g, e2)
	zt2, ok := err.(*zeroTransferError)
	if !ok {
		Te.Fatalf("expected a zeroTransferError, got %T: %v", err, err)
	}
	if zt2.Side() != "lost" {
		Te.Errorf("wrong degenerate side: %q", zt2.Side())
	}
}

//In strict mode a NaN in the input is an error naming the offending voxel;
//otherwise it just propagates into the moments.
func TestStrictNonFinite(Te *testing.T) {
	ground := make([]float64, 8)
	excited := make([]float64, 8)
	excited[0] = 1.0
	ground[7] = 1.0
	ground[3] = math.NaN()
	g := grid(Te, "ground", [3]int{2, 2, 2}, ground)
	e := grid(Te, "excited", [3]int{2, 2, 2}, excited)
	o := DefaultOptions()
	o.Cpus(2)
	o.Strict(true)
	_, err := Reduce(g, e, o)
	if err == nil {
		Te.Fatal("strict mode should fail on NaN")
	}
	if !strings.Contains(err.Error(), "voxel 3") {
		Te.Errorf("the error should name the offending voxel: %v", err)
	}
	o.Strict(false)
	m, err := Reduce(g, e, o)
	if err != nil {
		Te.Fatal(err)
	}
	if !math.IsNaN(m.QPlus) && !math.IsNaN(m.QMinus) {
		Te.Error("without strict mode the NaN should have propagated into the moments")
	}
}

func TestReduceCountMismatch(Te *testing.T) {
	g := grid(Te, "ground", [3]int{2, 2, 2}, make([]float64, 8))
	e := grid(Te, "excited", [3]int{2, 2, 1}, make([]float64, 4))
	_, err := Reduce(g, e)
	if err == nil {
		Te.Fatal("voxel count mismatch not detected")
	}
}
