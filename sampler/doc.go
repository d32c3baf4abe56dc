// Package sampler implements single-site Gibbs (Glauber dynamics) sampling of
// K-pairwise models over batches of binary state vectors.
//
// A Batch is a set of persistent chains: Advance mutates it in place and the
// next call continues exactly where the previous one stopped, including the
// position in the cyclic unit order.
package sampler
