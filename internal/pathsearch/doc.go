// SPDX-License-Identifier: GPL-3.0-or-later

// Package pathsearch locates a filename within an ordered list of candidate
// directories, returning the first match. It is the one primitive every
// resolver in this module builds on.
package pathsearch
