/*
 * doc.go, part of gocube.
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

/*Package cube reads and writes Gaussian cube files, volumetric scalar fields
sampled on a regular 3D grid, as produced by most quantum chemistry programs
(cubegen, Multiwfn, ORCA, etc).


	**gocube Capabilities**

    Reads and writes Gaussian cube files, including gzip and zstd
	compressed ones.

    Normalizes Angstrom cube files (negative voxel counts in the header)
	to Bohr on reading, so all in-memory grids use one unit.

    Verifies that two grids share the same geometry (voxel counts, origin
	and step vectors) before any voxel-by-voxel analysis.

    The dct subpackage computes charge-transfer descriptors (DCT and qCT,
	Le Bahers et al., J. Chem. Theory Comput. 2011, 7, 2498) from a pair
	of ground/excited state density cubes, concurrently.

A Grid is immutable once read or assembled: all access is through methods, so
grids can be shared freely among goroutines without locking.

The cube format is positional. The first 2 lines are free-text titles. The
third line has the atom number and the grid origin. The following 3 lines
have, each, the number of voxels along one axis and the 3 components of the
step vector for that axis. A negative voxel count marks the file as using
Angstrom instead of Bohr. Then come the atoms, one line each, and finally
Nx*Ny*Nz density values in free format, with x as the slowest index and z as
the fastest.*/
package cube
