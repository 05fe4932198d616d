/*
 * atomicdata.go, part of goefp.
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
	"strings"
	"unicode"
)

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.007825,
	"He": 4.002603,
	"Li": 7.016005,
	"Be": 9.012182,
	"B":  11.009305,
	"C":  12.0,
	"N":  14.003074,
	"O":  15.994915,
	"F":  18.998403,
	"Ne": 19.992440,
	"Na": 22.989769,
	"Mg": 23.985042,
	"Al": 26.981539,
	"Si": 27.976927,
	"P":  30.973762,
	"S":  31.972071,
	"Cl": 34.968853,
	"Ar": 39.962383,
	"K":  38.963707,
	"Ca": 39.962591,
	"Br": 78.918338,
	"I":  126.904473,
}

//A map for assigning the nuclear charge to elements.
var symbolZnuc = map[string]float64{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
	"K":  19,
	"Ca": 20,
	"Br": 35,
	"I":  53,
}

//symbolFromLabel extracts the element symbol from an EFP atom label.
//Labels look like "A01O1" or "A02H2": a letter and a two-digit index
//are followed by the symbol and a serial number. Plain symbols, such as
//"O" or "Cl1", are also accepted.
func symbolFromLabel(label string) string {
	l := label
	if len(l) > 3 && (l[0] == 'A' || l[0] == 'a') && unicode.IsDigit(rune(l[1])) && unicode.IsDigit(rune(l[2])) {
		l = l[3:]
	}
	end := 0
	for end < len(l) && unicode.IsLetter(rune(l[end])) {
		end++
	}
	l = l[:end]
	if l == "" {
		return ""
	}
	//Two letter symbols take precedence
	if len(l) >= 2 {
		two := strings.ToUpper(l[:1]) + strings.ToLower(l[1:2])
		if _, ok := symbolMass[two]; ok {
			return two
		}
	}
	return strings.ToUpper(l[:1])
}
