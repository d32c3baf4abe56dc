// Package main provides the training program for K-pairwise maximum entropy models.
// It reads a binary data matrix (one sample per line), fits couplings J and the
// population count potential VK with persistent Gibbs chains, and writes the
// fitted parameters as a zlib compressed json file.
package main
