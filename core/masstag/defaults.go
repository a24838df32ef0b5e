// core/masstag/defaults.go
package masstag

// defaultTags is the built-in tag set used when no tags file is supplied.
// Names are at most 8 characters. Order matters: lookups return the first
// match in this order, so entries must not be re-sorted.
var defaultTags = []Entry{
	{"Acetyl", 42.010565},
	{"Phosph", 79.966331},
	{"Plus1Oxy", 15.994915},
	{"Plus2Oxy", 31.989829},
	{"Plus3Oxy", 47.984744},
	{"IodoAcet", 57.021464},
	{"Methyl", 14.01565},
	{"DiMethyl", 28.0313},
	{"TriMeth", 42.04695},
	{"NH3_Loss", -17.026549},
	{"MinusH2O", -18.010565},
	{"Deamide", 0.984016},
	{"AmOxButa", -32.008456},
	{"Aminaton", 15.010899},
	{"AmMetSO", 48.009},
	{"Biotinyl", 226.077598},
	{"Bromo", 77.910511},
	{"Butyryl", 70.041865},
	{"C13Label", 1.003355},
	{"Carbamyl", 43.005814},
	{"Cyano", 25.007823},
	{"Cystnyl", 119.004099},
	{"Dehydro", -1.007825},
	{"DeutMeth", 17.034480},
	{"Dimet2H4", 32.056407},
	{"DTBP", 87.998285},
	{"Ethyl", 28.0313},
	{"Formyl", 27.994915},
	{"GalNAc", 203.079373},
	{"GluGlu", 258.085186},
	{"Glu", 129.042593},
	{"Glucosyl", 162.052824},
	{"Glutthn", 305.068156},
	{"Guanid", 42.021798},
	{"GlyGly", 114.042927},
	{"Heme_615", 615.169458},
	{"Hexosam", 161.068808},
	{"Hexose", 162.052824},
	{"ICAT_D0", 442.224991},
	{"ICAT_D8", 450.275205},
	{"ICAT_C12", 227.126991},
	{"ICAT_C13", 236.157185},
	{"IodoAcid", 58.005479},
	{"Iso_N15", 0.997035},
	{"itrac", 144.102063},
	{"iTRAQ8", 304.205360},
	{"LeuToMet", 17.956421},
	{"Lipoyl", 188.032956},
	{"Malonyl", 86.000394},
	{"Mercury", 199.9549},
	{"Met_O18", 16.028204},
	{"Methylmn", 85.052764},
	{"MinusH2", -2.015650},
	{"MinusNH2", -16.018724},
	{"MinusOxy", -15.994915},
	{"Myristyl", 210.198366},
	{"NEM", 125.047679},
	{"NH2", 16.018724},
	{"NHSLC", 339.161662},
	{"NipCAM", 99.068414},
	{"Nitro", 44.985078},
	{"NO_SMX", 268.038764},
	{"One_C12", 12.0},
	{"One_O18", 2.004246},
	{"Two_O18", 4.008491},
	{"OxyToSer", -29.992806},
	{"Palmityl", 238.229666},
	{"PCGalNAz", 502.202342},
	{"PEO", 414.193691},
	{"PhosAden", 329.052520},
	{"PhosUrid", 306.025302},
	{"Phosgly", 154.00311},
	{"PhosphH", 97.976896},
	{"Propnyl", 56.026215},
	{"PyroGlu", -17.026549},
	{"PyridAct", 119.037114},
	{"Pyridyl", 119.037114},
	{"Sucinyl", 100.016044},
	{"SATA_Alk", 131.0041},
	{"SATA_Lgt", 115.9932},
	{"Sulfo", 79.956815},
	{"SUMOgg", 484.228162},
	{"TMT0Tag", 224.152478},
	{"TMT2Tag", 225.155833},
	{"TMT6Tag", 229.162932},
	{"TMT16Tag", 304.207146},
	{"TriOxid", 47.984744},
	{"TriDeut", 3.018830},
	{"Trypoxy", 13.979265},
	{"Ubiq_02", 114.042927},
	{"Ubiq_H", 113.035069},
	{"ValToMet", 31.972071},
	{"AcNoTMT", -187.152366},
	{"AcetAmid", 41.026549},
	{"AlkSulf", -25.0316},
	{"Aminaret", 42.021798},
	{"Amide", -0.984016},
	{"Ammonia", 17.026549},
	{"Benzoyl", 104.026215},
	{"Crotonyl", 68.026215},
	{"Didehyd", -2.01565},
	{"Farnesyl", 204.187801},
	{"GerGer", 272.250401},
	{"Glutryl", 114.031694},
	{"Hydroxyl", 15.994915},
	{"Water", 18.010565},
}

// SetDefaultTags replaces the table contents with the built-in tag set.
func (t *Table) SetDefaultTags() {
	t.reset()
	for _, e := range defaultTags {
		t.Add(e.Name, e.Mass)
	}
}
