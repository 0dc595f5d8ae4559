/*
 * dct.go, part of gocube
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

/*Package dct computes charge-transfer descriptors from a pair of
ground-state/excited-state electron density grids (Le Bahers, Adamo and
Ciofini, J. Chem. Theory Comput. 2011, 7, 2498).

The density difference between the two states is split into its
charge-gain and charge-loss parts. The barycenter of each part gives the
R+ and R- centroids; DCT is the distance between them and qCT the total
charge gained (equivalently, within numerical error, lost).

The per-voxel reduction is spread over several goroutines, each owning a
chunk of the flat voxel range and its own accumulator. The accumulators
are merged once all workers are done, so no state is ever shared while
hot. The merge is a plain element-wise sum, so the final result does not
depend on how many goroutines were used, beyond floating point rounding.

Both grids are assumed to hold total densities of the same molecule in
two states. For a transition density the qCT reported here (the gain-side
charge) need not match the loss-side one.*/
package dct

import (
	"fmt"
	"math"
	"runtime"

	cube "github.com/rmera/gocube"
	"gonum.org/v1/gonum/floats"
)

//Options holds the optional settings for a reduction.
type Options struct {
	cpus   int
	strict bool
}

//DefaultOptions returns an Options with the default values: one worker
//per logical CPU, and non-strict arithmetic.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.strict = false
	return ret
}

//Cpus returns the current number of goroutines to use in the reduction,
//and sets it, if a valid value is given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

//Strict returns whether the reduction fails on non-finite density
//differences, and sets it, if a value is given. When not strict, NaN and
//Inf simply propagate arithmetically into the accumulated moments.
func (r *Options) Strict(strict ...bool) bool {
	ret := r.strict
	if len(strict) > 0 {
		r.strict = strict[0]
	}
	return ret
}

//Moments accumulates the charge and charge-weighted-position sums of the
//gain (Plus) and loss (Minus) parts of a density difference. Charges are in
//e, weighted positions in e*Bohr. Both QPlus and QMinus are positive:
//the loss side accumulates the absolute value of the density depletion.
type Moments struct {
	QPlus, QMinus float64
	RPlus, RMinus [3]float64
}

//Add adds, element-wise, the moments of N to those of M. The sum over all
//chunk moments is associative and commutative up to rounding, so the order
//in which chunks are merged does not matter.
func (M *Moments) Add(N *Moments) {
	M.QPlus += N.QPlus
	M.QMinus += N.QMinus
	floats.Add(M.RPlus[:], N.RPlus[:])
	floats.Add(M.RMinus[:], N.RMinus[:])
}

//Result holds the charge-transfer descriptors for one pair of states.
//Distances are in Angstrom, charges in e.
type Result struct {
	Ground  string //name of the ground-state grid
	Excited string //name of the excited-state grid
	QCT     float64
	DCT     float64
	RPlus   [3]float64 //centroid of the density gain
	RMinus  [3]float64 //centroid of the density depletion
}

func (R *Result) String() string {
	return fmt.Sprintf("DCT = %.2f A, qCT = %.2f e", R.DCT, R.QCT)
}

//Compute runs the whole pipeline on a pair of grids: geometry check,
//concurrent reduction, and the final descriptors. It fails with the
//geometry error verbatim if the grids are not compatible, and with a
//ZeroTransferError if either side of the density difference integrates
//to zero (identical grids, say), in which case the centroids would be
//0/0. No Result is ever derived from a zero charge.
func Compute(ground, excited *cube.Grid, options ...*Options) (*Result, error) {
	err := cube.Compatible(ground, excited)
	if err != nil {
		return nil, err
	}
	m, err := Reduce(ground, excited, options...)
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	r, err := m.Result(ground.Name(), excited.Name())
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	return r, nil
}

//Reduce computes the difference-density moments of the given pair of grids,
//splitting the flat voxel range into one contiguous chunk per requested CPU.
//The grids are only read, never written, so they need no locking; each
//goroutine accumulates into its own Moments, and the chunks are merged here
//after all workers are done. If any worker fails, the first failure is
//returned and every other chunk result is discarded.
//Reduce checks that the grids have the same voxel counts, but not the rest
//of the geometry; use cube.Compatible (or just call Compute) for that.
func Reduce(ground, excited *cube.Grid, options ...*Options) (*Moments, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if ground.Counts() != excited.Counts() {
		return nil, Error{fmt.Sprintf("grids have different voxel counts: %v vs %v", ground.Counts(), excited.Counts()), []string{"Reduce"}, true}
	}
	nvox := ground.NVoxels()
	vvol := ground.VoxelVolume()
	cpus := o.Cpus()
	if cpus > nvox {
		cpus = nvox
	}
	//a zero-value Options asks for 0 goroutines; run the reduction anyway
	if cpus < 1 {
		cpus = 1
	}
	results := make([]chan *reduced, cpus)
	for i := range results {
		results[i] = make(chan *reduced, 1)
		lo := i * nvox / cpus
		hi := (i + 1) * nvox / cpus
		go reduceChunk(ground, excited, lo, hi, vvol, o.Strict(), results[i])
	}
	total := new(Moments)
	var firsterr error
	for _, c := range results {
		r := <-c
		if r.err != nil {
			if firsterr == nil {
				firsterr = r.err
			}
			continue
		}
		total.Add(r.m)
	}
	if firsterr != nil {
		return nil, errDecorate(firsterr, "Reduce")
	}
	return total, nil
}

//the result of one chunk: its moments, or the error that stopped it.
type reduced struct {
	m   *Moments
	err error
}

//reduceChunk accumulates the moments of the voxels in [lo,hi). The chunk
//is walked in storage order; the (ix,iy,iz) indexes are re-derived from
//the flat index with the same x-slowest/z-fastest convention the parser
//used to fill the grid.
func reduceChunk(ground, excited *cube.Grid, lo, hi int, vvol float64, strict bool, out chan *reduced) {
	m := new(Moments)
	counts := ground.Counts()
	ny, nz := counts[1], counts[2]
	o := ground.Origin()
	a0, a1, a2 := ground.Axis(0), ground.Axis(1), ground.Axis(2)
	for i := lo; i < hi; i++ {
		d := excited.Value(i) - ground.Value(i)
		if strict && (math.IsNaN(d) || math.IsInf(d, 0)) {
			out <- &reduced{nil, Error{fmt.Sprintf("non-finite density difference at voxel %d", i), []string{"reduceChunk"}, true}}
			return
		}
		if d == 0 {
			continue
		}
		ix, iy, iz := i/(ny*nz), (i/nz)%ny, i%nz
		fx, fy, fz := float64(ix), float64(iy), float64(iz)
		w := d * vvol
		if d > 0 {
			m.QPlus += w
			for j := 0; j < 3; j++ {
				m.RPlus[j] += w * (o[j] + fx*a0[j] + fy*a1[j] + fz*a2[j])
			}
		} else {
			m.QMinus -= w //-w is positive here
			for j := 0; j < 3; j++ {
				m.RMinus[j] -= w * (o[j] + fx*a0[j] + fy*a1[j] + fz*a2[j])
			}
		}
	}
	out <- &reduced{m, nil}
}

//Result derives the final descriptors from fully combined moments.
//qCT is reported as the gain-side charge, which, for total densities,
//matches the loss side up to integration error. The centroids and DCT are
//converted to Angstrom; the moments themselves stay in Bohr.
func (M *Moments) Result(ground, excited string) (*Result, error) {
	if M.QPlus == 0 {
		return nil, newZeroTransferError("gained")
	}
	if M.QMinus == 0 {
		return nil, newZeroTransferError("lost")
	}
	r := new(Result)
	r.Ground = ground
	r.Excited = excited
	r.QCT = M.QPlus
	var d2 float64
	for j := 0; j < 3; j++ {
		rp := M.RPlus[j] / M.QPlus
		rm := M.RMinus[j] / M.QMinus
		r.RPlus[j] = rp * cube.Bohr2A
		r.RMinus[j] = rm * cube.Bohr2A
		d2 += (rp - rm) * (rp - rm)
	}
	r.DCT = math.Sqrt(d2) * cube.Bohr2A
	return r, nil
}
