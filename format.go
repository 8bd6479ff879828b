package nfecore

// FormatCNPJ renders a CNPJ as 00.000.000/0000-00. Input with the wrong
// length is returned stripped but otherwise untouched.
func FormatCNPJ(cnpj string) string {
	d := OnlyDigits(cnpj)
	if len(d) != CNPJLength {
		return d
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// FormatCPF renders a CPF as 000.000.000-00.
func FormatCPF(cpf string) string {
	d := OnlyDigits(cpf)
	if len(d) != CPFLength {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCEP renders a postal code as 00000-000.
func FormatCEP(cep string) string {
	d := OnlyDigits(cep)
	if len(d) != CEPLength {
		return d
	}
	return d[0:5] + "-" + d[5:8]
}

// FormatPhone renders 10-digit landlines as (00) 0000-0000 and 11-digit
// mobiles as (00) 00000-0000.
func FormatPhone(phone string) string {
	d := OnlyDigits(phone)
	switch len(d) {
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	default:
		return d
	}
}
