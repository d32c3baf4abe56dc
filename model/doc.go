// Package model holds the parameters of a K-pairwise maximum entropy model:
// the coupling matrix J (biases on the diagonal, symmetric pairwise couplings
// off the diagonal) and the population count potential VK.
//
// The parameters are one flat vector of length n*n+n+1, J row-major first and VK
// after it, so that a gradient of the same layout can be added to it directly.
package model
