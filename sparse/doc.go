// Package sparse provides the compressed-sparse-column (CSC) matrix
// representation shared by the smoothing objective, the constraint
// matrix, and the quadratic-program solver boundary.
//
// What:
//
//   - CSC stores only the non-zero values of a matrix, column by column:
//     Data holds the values, Indices the row index of each value, and
//     Indptr the offset in Data where each column starts.
//   - NewCSC validates the layout invariants and returns a ready matrix.
//   - Identity builds the trivial one-non-zero-per-column identity used
//     for per-variable box constraints.
//   - ToDense / ToSym reconstruct a gonum dense form, ToSym interpreting
//     the stored entries as the upper triangle of a symmetric matrix.
//
// Why:
//
//   - QP solvers consume objective and constraint matrices in CSC form;
//     the banded smoothing kernel is over 99% zeros for long paths.
//   - Dense reconstruction keeps verification (symmetry, positive
//     semi-definiteness) a one-liner in tests.
//
// Invariants:
//
//   - len(Indptr) == Cols+1, Indptr[0] == 0, Indptr non-decreasing,
//     Indptr[Cols] == len(Data) (the terminal sentinel).
//   - len(Indices) == len(Data); every row index lies in [0, Rows).
//
// Errors:
//
//   - ErrBadShape:       non-positive row or column count.
//   - ErrLengthMismatch: len(Data) != len(Indices).
//   - ErrBadIndptr:      Indptr malformed (length, ordering, sentinel).
//   - ErrBadIndex:       a row index outside [0, Rows).
//   - ErrLowerTriangle:  ToSym found an entry below the diagonal.
package sparse
