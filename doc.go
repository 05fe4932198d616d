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

/*Package efp computes interaction energies and gradients of systems made of rigid
molecular fragments described by effective fragment potentials (EFP).
Each fragment type is defined by a set of parameters (multipoles, polarizable points,
dynamic polarizabilities, localized orbital centroids, wavefunction and basis set)
obtained from a quantum chemical calculation. The potentials are read through a
PotentialReader (see the efpjson package) and each fragment of the system is an
instance of one of the loaded types, placed with 6 or more coordinates.


	**Capabilities**


    Electrostatics between distributed charges and dipoles, with optional
	screening (charge penetration) damping.

    Polarization, with induced dipoles obtained self-consistently and optional
	Tang-Toennies damping.

    Dispersion, from dynamic polarizabilities integrated over imaginary frequencies,
	with Tang-Toennies or overlap-based damping.

    Exchange repulsion, from the overlap of the localized orbital centroids of
	fragment pairs.

    Interaction of the fragments with a set of ab initio atoms. The polarization of
	the fragments can include the field of the ab initio electron density, which
	is provided by the caller.

    Periodic boundary conditions, with the minimum image convention and a switching
	function at the interaction cutoff. The stress tensor is available in this case.

    Gradients with respect to fragment positions and orientations, as forces and torques,
	and with respect to the ab initio atom positions.

    Fragment poses given as center of mass plus Euler angles, center of mass plus
	rotation matrix, or three points.


A context is created with New and freed with Shutdown. All the lengths are in bohr and
all the energies in hartree.*/
package efp
