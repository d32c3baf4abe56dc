// Package learning implements the gradient estimate of K-pairwise training:
// persistent chain lanes advanced in parallel, reduced to model statistics and
// compared with the empirical ones.
package learning
