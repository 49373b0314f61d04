// Copyright (c) 2026, The sike Authors.
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted, provided that the above
// copyright notice and this permission notice appear in all copies.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY
// SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION
// OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN
// CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.

package sike

import (
	"bytes"
	"testing"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/sike/sikep434"
	"github.com/cloudflare/circl/kem/sike/sikep503"
	"github.com/cloudflare/circl/kem/sike/sikep751"

	"github.com/isogeny/sike/sidh"
)

// Vectors for the larger parameter sets, SHAKE256 with m = 00 01 02 ..
var levelVectors = []struct {
	id             sidh.ID
	sk, pk, ct, ss string
}{
	{
		id: sidh.Fp503,
		sk: "4B9F6B4C6496B1FF15C320F6BB57F11BA7FC58B3B547E7D77682DD4E36431AD5" +
			"8B4B18ED2FACB6561AFFDBCA0955D38FA16D1FE73B5A4D08",
		pk: "48F9CC58A51B731A520C0BAA00839C0DB80803D091EC6937C599F391427BEDAA" +
			"B0D961133C446C377566E9D882BB08E3EF4ED20436301F635DF6D319CFBB2AC4" +
			"F4314B7B0BF7BA7280318C562FF243822FC06F412BA160D3255F9B39C9A30DCF" +
			"50C653B4EB413C3BFD6A842257AACF39D5E488196D9A0C8C95EA5221DB1E612C" +
			"9892E12D94B5417EBD0EE5C8B3CF3C92DC618FE5957816D333806A5A5192686E" +
			"AC1689BEF123EF04653E16B28B6290CC54EB76D5814D76A37749F44032B5076B" +
			"F13977253CA0F2AA8154ABFDEFC86B99D9EF493A46F7379B0DE5882383A6BFE6" +
			"5B97C5D9938E1538441C014BDD19138D0B9325AE8E5F4344F2D36E27D369A193" +
			"B3BE2E2B4DAC4EC1B879F66E75653DC69D37D1C9FCA43FDA201AD11042818128" +
			"69AB1273576943BE54B7616AB42DB516D0A967E9D5A4F2FDB5E114E2765A77A2" +
			"0A8D265FF92B562FB259B4703D327502F8A5B77B4D644B0A85994B667D7067BB" +
			"D9C6AB72754CB9A5D3DF7D8CE6EF7F6202B4C3CD251B7A315314",
		ct: "1EDBF7422E9ECFE61C7FEFE0308C7853632A6A7FFEC01D90BC81789AE50C015A" +
			"8F63E82C7F9016F206AFF97A41D43EE4B58CBC5DC050B9C10E9398890FFA0F2F" +
			"F0FAC79FB3FBB7DB7E5EAA624898D91E5D39E62FDA34D7D33076ACF5E72EAD75" +
			"5FF103A457E01BC0C5E6AF545428C0A1711876A116A60588ECB5BE57110B8216" +
			"D7C3312CF4A0039D3189EE124EEBDA160B2FB286AF486B9E4BBBA26DCDEED233" +
			"6E688DB1624F8E79FFD367707A8885B046A552F1B453F749059DD9FF238A116C" +
			"AFF0040FF64090B67B44EE90E0366F5BA8FE67D1170702FF37C928FF484C9D20" +
			"79194EF9DAEE98B5D5C24CB01E4D4FF99BAF3F813D580D388E7B223095CE2D41" +
			"B5E1835B58DBCE75D0F2670E9DA0BF077180F032E9E984EB10C06DEE9D3E4294" +
			"D8B21A01ED73DE59EB9461112170C717BB9581D4D2043BA459F51F432337BED6" +
			"E610B5636696CAF824B84649C977D2066DA4CD1A1F8AF7CCF42008F9CC8FA593" +
			"EBA2A5F6247569CF7DAC54A741B1A430CAA956D6699D7D852719B792DE14F0E7" +
			"3E1C838B04B9E258FDAAC573A8FBF90F3967",
		ss: "6B5F4731F11F99655527714E1989F71EDB94FE69134CC63D",
	},
	{
		id: sidh.Fp610,
		sk: "924BF91ED98D595CCA5E4816E8D4C9A9EF10D494362DA0D35C8877C34514D390" +
			"8B27E7E900D7723ED28F6C4F15FFA21BA933F9AC990C6F56C589165F53FB",
		pk: "0AA0E33D212A083930714CBC06FE0A22C3D61F5B26813F57595AF56D76FB0817" +
			"BFD8CC451B0BA8C9767B3794C80A5EF220459A65AAB09BFF1774CC914505C9B3" +
			"4EED7914774B782C0E80B1EE00E1256A7BA21E702F52F11413FCF8B8224ED6F8" +
			"B47F565F19178B8379DF8D5951C50473E099C63CDAC60667A1A82D67C1B95959" +
			"F0D87D365AD61BAE6C5000169CE27E1FBAEB32F14E0C27185202BC69B1418887" +
			"B7FF49F307A048618A492E76A1127AB6318596BD10B2D9DC8838F0D37D0EF5CC" +
			"141743DC209CB9DADB2D902AB078D947A435608CF9D806C5064470197FE5FA09" +
			"6F1DAC6FC44401196A43F87002E4C4105F3D683EB55B6CE35526CB144A73D4B0" +
			"FD4A1848F939194B706D24F5F6834D20E4F11BCCF0AEF216CCC8D650EA30130E" +
			"9002DC0A707A686936FDCC6083B589B23CD57F0018B6DFD2AE26D6C06C093785" +
			"120BDFC69D790C7F4028D59D703770208B141A3E9AD989262213FDA3573EAC32" +
			"EAFBFAD6A5B48DC1193FF27B1B3132D6782FF17C2D01653283ADA6A551F61FBE" +
			"00E2CD440782592F7786C2720850CCEE40C11A8B8E6165C14F5B3DFE78DFA514" +
			"3DECDBC1E3A8D673A80DA1D866519EB47428CA398E03CB08F43F11DD7331D3A9" +
			"CE3ADA7F0B62DA98DCDA65A2E201",
		ct: "072CFE99613514B35647B0777A512A511E834696494D132DE2522CD182A8B27E" +
			"69C214FF2EC45C2EB1FAA2E72628F5D62C6D1D8834A7E085C289FAC34796AFC3" +
			"67C29F62EECC84330079AADB002E48864948B03C97A94B7C6A933BB888CE08C6" +
			"D9ECE02BCD9581D56B5F431A3471161BBD7C1820E2C6DCDC17C41B903D535CCA" +
			"CAD82AA4880AEB136B2B8E959820788625DFBD402A06919F6001D0E9A3C7A366" +
			"DB8B5A2628CCF87C5D163EF9829EBAAE101386BDB23383760CC0C9BE7416740D" +
			"9D6B67D5EEAFDB093178B8597EED46D3BC2434A52B85C2678B0B820D47CA585C" +
			"8EEE97AEE0A0003400ACA22979A2EA8E66723CE46D7E7D87C5CDD1C0972DFDAA" +
			"C960AF12BA060C73E7C83DBEC72E07F601E4F872C70EAE09B58E1C4A70D14507" +
			"0DC29BB2E26A7BFEA8129B697F377B4550587600DBFE39E807E555C0BC33B802" +
			"98E0AB29CB8587B6A1E445E8760218864FF445ABB963BE670D0E388F428F569C" +
			"A8569244670251D3F2203B9CBD560FB7ADE8DB29C525CE72179109531F248304" +
			"014256A8866458AC5C8B62AF4760CE10500C762D5F930DD4335B644B413D6A2D" +
			"3B78DE2EF93C8F36A2336837E8788E73CAEE18FAAA6A95B884077EA7D3697F3F" +
			"A1D2DC7AB3E39E78C27CDD2350024A5851BACB561DCFB190788D14356B571AAC" +
			"EFD5C28A1220",
		ss: "0E894CFA06623AF37888681726DEF8319B9240DDB1BFB293",
	},
	{
		id: sidh.Fp751,
		sk: "A204C0A8B2F074CD0145B741110E29BAEDEB8C3AA554E64B646E3374F1A1D20C" +
			"310509D488076225551D85CCABD941E2CCEF9BCD1AB630DE382E44A2E2AD8ADE" +
			"3DFA53A766F3EEE80D87092D33602B02",
		pk: "E405555837AED23E9C4A99386AA9AF643FF4C9BB92325B4F3CB10B976DE7FA8F" +
			"844D25AD1A7E9D76A49B49F07CB6ED21F16E4D2C4AE23337CF0AEFFAA2B84B9A" +
			"E2E26405C45355D9237F534415CDCC2ACD36C17B6EA31020B85DD9EE4C2B5400" +
			"550CC06BB739785FA4BDD93B380CD12910921DC85E941D82B792F503D6A8BFB3" +
			"92FED532F5602BB9FA9C01F1E1416A1BE9A9F923B3D43A1B6F51849186A97EF7" +
			"077594F7D9D4B7179F43B6E2A36E65453A84771B3068667692599E67A2A66BEF" +
			"C06513EF1E562F21168A092B90CA069D237E756868979294E1B84418D5466280" +
			"CCCFB0AF11548D7008DD200BBF53A0820B7E0CE8AE2DF64E25F5F899A73D3D63" +
			"ED8264A2B260776FCCDEC671F282079D0AB1F5BFF840556F286BE203251310AE" +
			"6A357D9A4850653182E9857B430DA0D6A8874BCB7E5F1068108064BE761F64ED" +
			"32C408C5E3979C2C134E8567D7C3B0E1C07B6AA8DF0DAB5DE570D2E5458612A3" +
			"28C7DFD8BDA72B64166E330E64B5C3911648E85A606A925AB260B38D26D58E95" +
			"CAD126A58817904DE79E8729BF389AC1A07BE96922BB7DCDDA63208608D34C91" +
			"437F6394D5A297D8C965DFA5491BD8926A3B399EEB48BEC9FCF430290320BD29" +
			"28450373953B46FE76787BE0BFDA11F3FD363922FC533B9FE6FBD7973700A4F2" +
			"4E685C5A18072085C775C4F7F3641EB5372CE4281DA98BA7A61D1600FB4563C1" +
			"A07B7E04F93288BCB0D52C15B4168636B0C0A66DB5B082B7740D9CE39B1A7DA7" +
			"B575F7A9730A55B9E61D8893EE6AB714466BDB09",
		ct: "DCEC23A6F6F3DA052F1E0E7C200BD351704AC5BF08DDBE35804D5215197DA2BE" +
			"F9DDEC68C00FEB869F3A6C053956FBE6D2E3AE7938FE736F67946032938E5C6A" +
			"5BC94527CF02DD96D60DC63FD1B9604643788FAB3CD620B74241D07A5A69FF40" +
			"CFF119A6B6B3F7F804441ACEB0C4407A2C7AF30364BEA4E6B92E22DE26032F90" +
			"5638FE92D228128995DFFAA8F8DD8A74C3D7C2FC3D8A732FB05373D6A2D6370E" +
			"A9962F89930733ABAA45F33BB1B4D9055DFEB530610F5835872F84066A6578B1" +
			"A943E2E8E25CDC719E6078A0FF7A6FFBF31700DCCAD050E9089283A9B771D632" +
			"BF8633E2D0A0596D4028BB389065CEF27677F548FCC9769688B55EEBE42E33EB" +
			"1B722A62A7113F01EABC419FD366D8676BC338B57603D118B13D262C9B632115" +
			"EC4F9D0FF5BB2DA44C16AEA972876790183B1CA66010117246C3FA555DFBD216" +
			"D56D31DC4FA15F175B4B414212CC610E9C6D5A46A5204757908ABE28B4DCA683" +
			"461F743AC2CC613841F138729BB13B2887361DA153FC1E69193609C66BAFB11A" +
			"A9588C3B9974CF330BC6E9773F077A60E19EBFF522E7C5D3FA3D5D61701EAED9" +
			"3D3B41FB3274499A1C57E6385D3DC100EBACD8FEB4B88EE60CED248914FB16E6" +
			"3C15460CA35F6FB41DD4A73CED42DD8E75B4869A8667289099A976BF0181E6E4" +
			"C95D744EC9BB4971BE6E103A7729939F125823C329E918D6F739ABB0C3F7FEEC" +
			"60702FCA1FCF5C084D2CCFA5BDD896C1E185FBBEC0A87E85E32AAEC87375202B" +
			"756D9979EF582DA2535E792FD98DCB2822957141493C967B11C737727309DE2D" +
			"52A07CD2D8532248DAF357AE46061B4CB1688FE3",
		ss: "0E1A76F24FBD2390ADDB007903DF2E0817215DBF5FCE09DDC40E82A068FD5336",
	},
}

func TestLevelKATs(t *testing.T) {
	for _, v := range levelVectors {
		v := v
		s := New(v.id)
		t.Run(s.Name(), func(t *testing.T) {
			if testing.Short() && v.id > sidh.Fp503 {
				t.Skip("slow")
			}
			pk, err := s.UnmarshalBinaryPublicKey(mustHex(v.pk))
			checkErr(t, err, "can't import public key")
			m := make([]byte, s.EncapsulationSeedSize())
			for i := range m {
				m[i] = byte(i)
			}
			ct, ss, err := s.EncapsulateDeterministically(pk, m)
			checkErr(t, err, "encapsulation")
			if !bytes.Equal(ct, mustHex(v.ct)) {
				t.Errorf("wrong ciphertext\n got: %X", ct)
			}
			if !bytes.Equal(ss, mustHex(v.ss)) {
				t.Errorf("wrong shared key\n got: %X", ss)
			}

			sk, err := s.UnmarshalBinaryPrivateKey(append(mustHex(v.sk), mustHex(v.pk)...))
			checkErr(t, err, "can't import private key")
			ss2, err := s.Decapsulate(sk, mustHex(v.ct))
			checkErr(t, err, "decapsulation")
			if !bytes.Equal(ss2, mustHex(v.ss)) {
				t.Errorf("wrong decapsulation result\n got: %X", ss2)
			}
		})
	}
}

// Keys and ciphertexts are exchanged with circl's SIKE in both
// directions. circl's private key is s || scalar, without the public key.
func TestCirclInterop(t *testing.T) {
	for _, tc := range []struct {
		id    sidh.ID
		other kem.Scheme
	}{
		{sidh.Fp434, sikep434.Scheme()},
		{sidh.Fp503, sikep503.Scheme()},
		{sidh.Fp751, sikep751.Scheme()},
	} {
		tc := tc
		s := New(tc.id)
		t.Run(s.Name(), func(t *testing.T) {
			if testing.Short() && tc.id > sidh.Fp503 {
				t.Skip("slow")
			}
			if s.Name() != tc.other.Name() || s.PublicKeySize() != tc.other.PublicKeySize() ||
				s.CiphertextSize() != tc.other.CiphertextSize() || s.SharedKeySize() != tc.other.SharedKeySize() {
				t.Fatal("scheme parameters differ")
			}
			seed := make([]byte, s.SeedSize())
			for i := range seed {
				seed[i] = byte(i)
			}

			// Our key pair, circl encapsulates
			pk, sk := s.DeriveKeyPair(seed)
			pkb, _ := pk.MarshalBinary()
			opk, err := tc.other.UnmarshalBinaryPublicKey(pkb)
			checkErr(t, err, "circl public key import")
			ct, ssE, err := tc.other.Encapsulate(opk)
			checkErr(t, err, "circl encapsulation")
			ssD, err := s.Decapsulate(sk, ct)
			checkErr(t, err, "decapsulation")
			if !bytes.Equal(ssE, ssD) {
				t.Errorf("circl encapsulation not decapsulated\n circl: %X\n   got: %X", ssE, ssD)
			}

			// Same private key on both sides, including implicit rejection
			skb, _ := sk.MarshalBinary()
			osk, err := tc.other.UnmarshalBinaryPrivateKey(skb[:tc.other.PrivateKeySize()])
			checkErr(t, err, "circl private key import")
			ct, ssE, err = s.Encapsulate(pk)
			checkErr(t, err, "encapsulation")
			ssD, err = tc.other.Decapsulate(osk, ct)
			checkErr(t, err, "circl decapsulation")
			if !bytes.Equal(ssE, ssD) {
				t.Errorf("circl can't decapsulate\n  ours: %X\n circl: %X", ssE, ssD)
			}
			ct[len(ct)-1] ^= 0x80
			ours, err := s.Decapsulate(sk, ct)
			checkErr(t, err, "decapsulation")
			theirs, err := tc.other.Decapsulate(osk, ct)
			checkErr(t, err, "circl decapsulation")
			if !bytes.Equal(ours, theirs) || bytes.Equal(ours, ssE) {
				t.Errorf("rejection keys differ\n  ours: %X\n circl: %X", ours, theirs)
			}

			// circl's key pair, we encapsulate
			opk, osk = tc.other.DeriveKeyPair(seed)
			opkb, _ := opk.MarshalBinary()
			pk2, err := s.UnmarshalBinaryPublicKey(opkb)
			checkErr(t, err, "public key import")
			ct, ssE, err = s.Encapsulate(pk2)
			checkErr(t, err, "encapsulation")
			ssD, err = tc.other.Decapsulate(osk, ct)
			checkErr(t, err, "circl decapsulation")
			if !bytes.Equal(ssE, ssD) {
				t.Errorf("circl can't decapsulate\n  ours: %X\n circl: %X", ssE, ssD)
			}
		})
	}
}
