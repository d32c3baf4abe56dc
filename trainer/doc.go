// Package trainer provides high-level training orchestration for K-pairwise models.
// It burns in persistent Gibbs chains from a bootstrap draw of the data and then
// runs a fixed number of stochastic gradient steps, each estimating the model
// statistics from the chains advanced in parallel lanes.
package trainer
