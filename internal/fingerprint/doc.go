// Package fingerprint produces acoustic fingerprints with the Chromaprint
// fpcalc tool and matches them against the AcoustID web service.
//
// Local extraction failures and service transport errors carry the
// fingerprint error marker; a successful lookup with zero matches is benign
// and yields an empty candidate list.
package fingerprint
