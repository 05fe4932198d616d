/*
 * doc.go, part of goefp.
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

/*Package efpjson reads and writes EFP potential parameters as JSON, optionally
compressed with zstd. Its Reader implements efp.PotentialReader.

A potential file contains a list of fragments:

	{"fragments": [
		{"name": "H2O",
		 "atoms": [{"label": "A01O1", "xyz": [0, 0, 0]}, ...],
		 "multipoles": [{"xyz": [...], "monopole": -0.5, "dipole": [...], "quadrupole": [...], "octupole": [...]}],
		 "screen": {"group": "SCREEN2", "params": [...]},
		 "polarizable_pts": [{"xyz": [...], "tensor": [...]}],
		 "dynamic_polarizable_pts": [{"xyz": [...], "tensors": [[...], ...]}],
		 "lmo_centroids": [[...], ...],
		 "basis": [{"xyz": [...], "type": "S", "coef": [...]}],
		 "fock": [...],
		 "wavefunction": [...]}
	]}

Coordinates are in bohr. Atom masses and nuclear charges, if absent, are taken
from the element in the atom label.
*/
package efpjson
