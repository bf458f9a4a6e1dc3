package model

// AddressUse is the purpose of an address.
type AddressUse string

// AddressUse values.
const (
	AddressUseHome    AddressUse = "home"
	AddressUseWork    AddressUse = "work"
	AddressUseTemp    AddressUse = "temp"
	AddressUseOld     AddressUse = "old"
	AddressUseBilling AddressUse = "billing"
)

// AddressUseValues lists the AddressUse domain.
func AddressUseValues() []AddressUse {
	return []AddressUse{AddressUseHome, AddressUseWork, AddressUseTemp, AddressUseOld, AddressUseBilling}
}

// NameUse is the purpose of a human name.
type NameUse string

// NameUse values.
const (
	NameUseUsual     NameUse = "usual"
	NameUseOfficial  NameUse = "official"
	NameUseTemp      NameUse = "temp"
	NameUseNickname  NameUse = "nickname"
	NameUseAnonymous NameUse = "anonymous"
	NameUseOld       NameUse = "old"
	NameUseMaiden    NameUse = "maiden"
)

// NameUseValues lists the NameUse domain.
func NameUseValues() []NameUse {
	return []NameUse{NameUseUsual, NameUseOfficial, NameUseTemp, NameUseNickname, NameUseAnonymous, NameUseOld, NameUseMaiden}
}

// IdentifierUse is the purpose of an identifier.
type IdentifierUse string

// IdentifierUse values.
const (
	IdentifierUseUsual     IdentifierUse = "usual"
	IdentifierUseOfficial  IdentifierUse = "official"
	IdentifierUseTemp      IdentifierUse = "temp"
	IdentifierUseSecondary IdentifierUse = "secondary"
	IdentifierUseOld       IdentifierUse = "old"
)

// IdentifierUseValues lists the IdentifierUse domain.
func IdentifierUseValues() []IdentifierUse {
	return []IdentifierUse{IdentifierUseUsual, IdentifierUseOfficial, IdentifierUseTemp, IdentifierUseSecondary, IdentifierUseOld}
}

// ContactPointSystem is the telecommunications form of a contact point.
type ContactPointSystem string

// ContactPointSystem values.
const (
	ContactPointSystemPhone ContactPointSystem = "phone"
	ContactPointSystemFax   ContactPointSystem = "fax"
	ContactPointSystemEmail ContactPointSystem = "email"
	ContactPointSystemPager ContactPointSystem = "pager"
	ContactPointSystemURL   ContactPointSystem = "url"
	ContactPointSystemSMS   ContactPointSystem = "sms"
	ContactPointSystemOther ContactPointSystem = "other"
)

// ContactPointSystemValues lists the ContactPointSystem domain.
func ContactPointSystemValues() []ContactPointSystem {
	return []ContactPointSystem{
		ContactPointSystemPhone, ContactPointSystemFax, ContactPointSystemEmail, ContactPointSystemPager,
		ContactPointSystemURL, ContactPointSystemSMS, ContactPointSystemOther,
	}
}

// ContactPointUse is the purpose of a contact point.
type ContactPointUse string

// ContactPointUse values.
const (
	ContactPointUseHome   ContactPointUse = "home"
	ContactPointUseWork   ContactPointUse = "work"
	ContactPointUseTemp   ContactPointUse = "temp"
	ContactPointUseOld    ContactPointUse = "old"
	ContactPointUseMobile ContactPointUse = "mobile"
)

// ContactPointUseValues lists the ContactPointUse domain.
func ContactPointUseValues() []ContactPointUse {
	return []ContactPointUse{ContactPointUseHome, ContactPointUseWork, ContactPointUseTemp, ContactPointUseOld, ContactPointUseMobile}
}

// AdministrativeGender is the gender recorded for administrative purposes.
type AdministrativeGender string

// AdministrativeGender values.
const (
	GenderMale    AdministrativeGender = "male"
	GenderFemale  AdministrativeGender = "female"
	GenderOther   AdministrativeGender = "other"
	GenderUnknown AdministrativeGender = "unknown"
)

// AdministrativeGenderValues lists the AdministrativeGender domain.
func AdministrativeGenderValues() []AdministrativeGender {
	return []AdministrativeGender{GenderMale, GenderFemale, GenderOther, GenderUnknown}
}
