// Package datasets implements the binary data matrix the models are fitted to,
// with a text loader, bootstrap resampling and a synthetic generator of
// independent Bernoulli units.
package datasets
