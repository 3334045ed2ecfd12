package views

import "fundboard/internal/session"

type Field struct {
	Label string
	Name  string
	Value string
}

// ProfileView is the model of the Profile page.
type ProfileView struct {
	Fields []Field
}

// Profile lists the signed-in user's details. Absent optional values render
// as empty strings.
func Profile(snap session.Snapshot) ProfileView {
	if snap.User == nil {
		return ProfileView{}
	}
	u := snap.User
	return ProfileView{Fields: []Field{
		{Label: "Name", Name: "name", Value: u.Name},
		{Label: "Email", Name: "email", Value: u.Email},
		{Label: "Role", Name: "role", Value: u.Role},
		{Label: "Organization", Name: "organization", Value: u.Organization},
		{Label: "Wallet Address", Name: "walletAddress", Value: u.WalletAddress},
	}}
}
