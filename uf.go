package nfecore

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

type state struct {
	code   int
	name   string
	region string
	zone   string
}

// IBGE state codes used in the first two digits of an access key, with the
// IANA zone SEFAZ expects local timestamps of that state to carry.
var states = map[string]state{
	"AC": {12, "Acre", "Norte", "America/Rio_Branco"},
	"AL": {27, "Alagoas", "Nordeste", "America/Maceio"},
	"AP": {16, "Amapá", "Norte", "America/Belem"},
	"AM": {13, "Amazonas", "Norte", "America/Manaus"},
	"BA": {29, "Bahia", "Nordeste", "America/Bahia"},
	"CE": {23, "Ceará", "Nordeste", "America/Fortaleza"},
	"DF": {53, "Distrito Federal", "Centro-Oeste", "America/Sao_Paulo"},
	"ES": {32, "Espírito Santo", "Sudeste", "America/Sao_Paulo"},
	"GO": {52, "Goiás", "Centro-Oeste", "America/Sao_Paulo"},
	"MA": {21, "Maranhão", "Nordeste", "America/Fortaleza"},
	"MT": {51, "Mato Grosso", "Centro-Oeste", "America/Cuiaba"},
	"MS": {50, "Mato Grosso do Sul", "Centro-Oeste", "America/Campo_Grande"},
	"MG": {31, "Minas Gerais", "Sudeste", "America/Sao_Paulo"},
	"PA": {15, "Pará", "Norte", "America/Belem"},
	"PB": {25, "Paraíba", "Nordeste", "America/Fortaleza"},
	"PR": {41, "Paraná", "Sul", "America/Sao_Paulo"},
	"PE": {26, "Pernambuco", "Nordeste", "America/Recife"},
	"PI": {22, "Piauí", "Nordeste", "America/Fortaleza"},
	"RJ": {33, "Rio de Janeiro", "Sudeste", "America/Sao_Paulo"},
	"RN": {24, "Rio Grande do Norte", "Nordeste", "America/Fortaleza"},
	"RS": {43, "Rio Grande do Sul", "Sul", "America/Sao_Paulo"},
	"RO": {11, "Rondônia", "Norte", "America/Porto_Velho"},
	"RR": {14, "Roraima", "Norte", "America/Boa_Vista"},
	"SC": {42, "Santa Catarina", "Sul", "America/Sao_Paulo"},
	"SP": {35, "São Paulo", "Sudeste", "America/Sao_Paulo"},
	"SE": {28, "Sergipe", "Nordeste", "America/Maceio"},
	"TO": {17, "Tocantins", "Norte", "America/Araguaina"},
}

// StateCode returns the two-digit IBGE code for a state acronym, ready to be
// used as the first access key field.
func StateCode(acronym string) (string, bool) {
	s, ok := states[strings.ToUpper(acronym)]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d", s.code), true
}

// StateAcronym is the inverse of StateCode.
func StateAcronym(code string) (string, bool) {
	for acronym, s := range states {
		if fmt.Sprintf("%02d", s.code) == code {
			return acronym, true
		}
	}
	return "", false
}

func IsValidState(acronym string) bool {
	_, ok := states[strings.ToUpper(acronym)]
	return ok
}

// StateName returns the full state name, or "" for unknown acronyms.
func StateName(acronym string) string {
	return states[strings.ToUpper(acronym)].name
}

// StateRegion returns the macro-region (Norte, Nordeste, Centro-Oeste, Sudeste, Sul).
func StateRegion(acronym string) string {
	return states[strings.ToUpper(acronym)].region
}

// StateTimezone returns the IANA time zone name of a state.
func StateTimezone(acronym string) (string, bool) {
	s, ok := states[strings.ToUpper(acronym)]
	if !ok {
		return "", false
	}
	return s.zone, true
}

// StateLocation loads the time zone of a state.
func StateLocation(acronym string) (*time.Location, error) {
	zone, ok := StateTimezone(acronym)
	if !ok {
		return nil, fmt.Errorf("unknown state %q", acronym)
	}
	return time.LoadLocation(zone)
}
