package model

import "strings"

// DisplayName is how a buyer is printed on tickets, certificates and emails.
func DisplayName(firstName, surname string) string {
	return strings.Join(strings.Fields(firstName+" "+surname), " ")
}
