// Package nfecore provides identity management for Brazilian electronic tax
// documents (NF-e and NFC-e): access keys, taxpayer identifiers, contingency
// emission and certificate expiry.
//
// Nothing in this package performs network or file I/O. Building the XML
// body, signing it and talking to SEFAZ belong to the caller's toolkit; this
// package supplies the identifiers and state those steps depend on.
//
// # Access keys
//
// A key is 44 digits: state code, year-month, issuer CNPJ, model, series,
// number, emission type, numeric code and a modulo-11 check digit.
//
//	key, err := nfecore.BuildAccessKey("35", "2401", "12345678000195", "55",
//	    "001", "000000001", cont.EmissionType(), "12345678")
//
//	fields, err := nfecore.ParseAccessKey(key)
//	ok := nfecore.ValidateAccessKey(key)
//
// Fields are never padded; each must already have its exact width.
//
// # Taxpayer identifiers
//
//	nfecore.ValidateCNPJ("12.345.678/0001-95") // true
//	nfecore.ValidateCPF("111.444.777-35")      // true
//
// # Contingency
//
// A Contingency is an explicit object owned by whatever issues documents.
// While active, EmissionType returns the contingency tpEmis to embed in new
// keys, and AdjustXML rewrites documents built before the outage:
//
//	cont, _ := nfecore.NewContingency()
//	snapshot, err := cont.Activate("SP", "SEFAZ SP fora do ar", nfecore.ModeAlternateA)
//	// persist snapshot; after a restart: cont.Load(snapshot)
//	adjusted, err := cont.AdjustXML(signedXML)
//	cont.Deactivate()
//
// # Certificates
//
// CertificateLifecycle wraps any Certificate implementation (X509Certificate
// adapts a parsed *x509.Certificate) and reports summary, validity and days
// until expiry. Query failures are reported as ErrUnavailable or false,
// never as the underlying error.
package nfecore
