package nscp

import "math"

// NSCP 2015 Steel Constants (Chapter 5, strength design)

const (
	// Modulus of elasticity for structural steel
	Es = 200000.0 // MPa

	// Resistance factors (Sections 504.2 and 505.1)
	PhiTension     = 0.90 // Tensile yielding on the gross section
	PhiCompression = 0.90 // Flexural buckling

	// Recommended slenderness limits
	MaxSlendernessCompression = 200.0
	MaxSlendernessTension     = 300.0

	// Fy/Fe ratio separating inelastic and elastic buckling
	inelasticLimit = 2.25
)

// Member holds the section data needed for an axial capacity check
type Member struct {
	Area   float64 // Gross area Ag (mm²)
	Radius float64 // Least radius of gyration r (mm), 0 if unknown
	Fy     float64 // Yield strength (MPa)
	E      float64 // Elastic modulus (MPa), Es if zero
	K      float64 // Effective length factor, 1.0 if zero
	Length float64 // Unbraced length (mm)
}

// Slenderness returns KL/r, or 0 when the radius of gyration is unknown
func (m Member) Slenderness() float64 {
	if m.Radius <= 0 {
		return 0
	}
	k := m.K
	if k <= 0 {
		k = 1
	}
	return k * m.Length / m.Radius
}

func (m Member) modulus() float64 {
	if m.E <= 0 {
		return Es
	}
	return m.E
}

// TensionCapacity returns φt·Fy·Ag in kN
func TensionCapacity(fy, area float64) float64 {
	return PhiTension * fy * area / 1000
}

// CriticalStress returns the flexural buckling stress Fcr (MPa)
// for a member with slenderness KL/r
func CriticalStress(fy, e, slenderness float64) float64 {
	if slenderness <= 0 {
		return fy
	}
	// Fe = π²E / (KL/r)²
	fe := math.Pi * math.Pi * e / (slenderness * slenderness)
	if fy/fe <= inelasticLimit {
		// Inelastic buckling: Fcr = 0.658^(Fy/Fe) · Fy
		return math.Pow(0.658, fy/fe) * fy
	}
	// Elastic buckling: Fcr = 0.877 Fe
	return 0.877 * fe
}

// CompressionCapacity returns φc·Fcr·Ag in kN
func CompressionCapacity(m Member) float64 {
	fcr := CriticalStress(m.Fy, m.modulus(), m.Slenderness())
	return PhiCompression * fcr * m.Area / 1000
}

// AxialCheck holds the result of a member capacity check
type AxialCheck struct {
	Stress      float64 // Axial stress (MPa), positive in tension
	Slenderness float64 // KL/r, 0 if unknown
	Capacity    float64 // Design capacity φPn (kN)
	Utilization float64 // |Pu| / φPn
	IsAdequate  bool
	Message     string
}

// CheckAxial checks an axial force (kN, positive = tension) against the
// member's design strength
func CheckAxial(force float64, m Member) AxialCheck {
	check := AxialCheck{Slenderness: m.Slenderness()}
	if m.Area <= 0 || m.Fy <= 0 {
		check.Message = "no section data"
		return check
	}

	check.Stress = force * 1000 / m.Area

	if force >= 0 {
		check.Capacity = TensionCapacity(m.Fy, m.Area)
	} else {
		check.Capacity = CompressionCapacity(m)
	}
	check.Utilization = math.Abs(force) / check.Capacity
	check.IsAdequate = check.Utilization <= 1

	switch {
	case !check.IsAdequate:
		check.Message = "Overstressed"
	case force < 0 && m.Radius <= 0:
		check.Message = "OK (buckling not checked, no radius of gyration)"
	case force < 0 && check.Slenderness > MaxSlendernessCompression:
		check.Message = "OK | WARNING: KL/r exceeds 200"
	case force >= 0 && check.Slenderness > MaxSlendernessTension:
		check.Message = "OK | WARNING: L/r exceeds 300"
	default:
		check.Message = "OK"
	}

	return check
}
