// Package main provides a program drawing samples from a fitted K-pairwise model.
// It prints the population count distribution and unit rates of the samples and,
// given the training data, how far they are from the empirical statistics.
package main
