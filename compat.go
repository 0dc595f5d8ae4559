/*
 * compat.go, part of gocube.
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
)

//Compatible returns nil if the two grids share the same geometry: equal
//voxel counts, and origins and step vectors equal within GeomEpsilon Bohr.
//Otherwise it returns a GeomError naming the first field that differs and
//both values. Grids that fail this check cannot be compared voxel by voxel,
//so any such mismatch must reach the caller, never be coerced away.
//The verdict is symmetric in a and b.
func Compatible(a, b *Grid) error {
	ca, cb := a.Counts(), b.Counts()
	if ca != cb {
		return GeomError{"voxel counts", fmt.Sprintf("%v", ca), fmt.Sprintf("%v", cb), []string{"Compatible"}}
	}
	oa, ob := a.Origin(), b.Origin()
	for i := 0; i < 3; i++ {
		if math.Abs(oa[i]-ob[i]) > GeomEpsilon {
			return GeomError{"origin", fmt.Sprintf("%v", oa), fmt.Sprintf("%v", ob), []string{"Compatible"}}
		}
	}
	for i := 0; i < 3; i++ {
		va, vb := a.Axis(i), b.Axis(i)
		for j := 0; j < 3; j++ {
			if math.Abs(va[j]-vb[j]) > GeomEpsilon {
				return GeomError{fmt.Sprintf("axis %d step vector", i), fmt.Sprintf("%v", va), fmt.Sprintf("%v", vb), []string{"Compatible"}}
			}
		}
	}
	return nil
}
