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

package params

import (
	"github.com/isogeny/sike/internal/field"
)

// p610 = 2^305*3^192 - 1. Starting curve E_6: y^2 = x^3 + 6x^2 + x.
//
// The torsion bases follow the generator rule of the other sets, see
// TestGeneratorRule. Isogeny strategies are computed by
// isogeny.OptimalStrategy.
func newP610() (*Params, error) {
	return build(&setup{
		id:      P610,
		name:    "p610",
		eA:      305,
		eB:      192,
		initA:   6,
		msgLen:  24,
		kemSize: 24,
		A: torsion{
			// x(PA)
			P: field.Fp2{
				A: field.Fp{
					0x5019EC96A75AC57A, 0x8AEA0E717712C6F1, 0x03C067C819D29E5E, 0x59F454425FE307D9,
					0x6D29215D9AD5E6D4, 0xD8C5A27CDC9DD34A, 0x972DC274DAB435B3, 0x82A597C70A80E10F,
					0x48175986EFED547F, 0x00000000671A3592,
				},
				B: field.Fp{
					0xE4BA9CC3EEEC53F4, 0xBD34E4FEDB0132D3, 0x1B7125C87BEE960C, 0x25D615BF3CFAA355,
					0xFC8EC20DC367D66A, 0xB44F3FD1CC73289C, 0xD84BF51195C2E012, 0x38D7C756EB370F48,
					0xBBC236249F94F72A, 0x000000013020CC63,
				},
			},
			// x(QA)
			Q: field.Fp2{
				A: field.Fp{
					0x1D7C945D3DBCC38C, 0x9A5F7C12CA8BA5B9, 0x1E8F87985B01CBE3, 0xD2CABF82F5BC5235,
					0x3BDE474ECCA9FAA2, 0xB98CD975DF9FB0A8, 0x444E4464B9C67790, 0xCB2E888565CE6AD9,
					0xDB64FFE2A1C350E2, 0x00000001D7532756,
				},
				B: field.Fp{
					0x1E8B3AA2382C9079, 0x28CB31E08A943C00, 0xE04D02266E8A63E1, 0x84A2D260214EF65F,
					0xD5933DA25018E226, 0xBC8BF038928C4BA9, 0x91E9D0CB7EAF58A9, 0x04A4627B75E008E1,
					0x58CEF27583E50C2E, 0x00000002170DDF44,
				},
			},
			// x(PA-QA)
			R: field.Fp2{
				A: field.Fp{
					0x261DD0782CEC958D, 0xC25B3AE64BBC0311, 0x9F21B8A8981B15FE, 0xA3C0B52CD5FFC45B,
					0x5D2E65A016702C6A, 0x8C5586CA98722EDE, 0x61490A967A6B4B1A, 0xFA64E30231F719AF,
					0x9CEAB8B6301BB2DF, 0x00000000CF5AEA7D,
				},
				B: field.Fp{
					0xB980435A77B912C0, 0x2B4A97F70E0FC873, 0x415C7FA4DE96F43C, 0xE5EED95643E443FD,
					0xCBE18DB57C51B354, 0x51C96C3FFABD2D46, 0x5C14637B9A5765D6, 0x45D2369C4D0199A5,
					0x25A1F9C5BBF1E683, 0x000000025AD7A11B,
				},
			},
		},
		B: torsion{
			// x(PB)
			P: field.Fp2{
				A: field.Fp{
					0xC6C8E180E41884BA, 0x2161D2F4FBC32B95, 0xCBF83091BDB34092, 0xD742CC0AD4CC7E38,
					0x61A1FA7E1B14FBD7, 0xF0E5FC70137597C4, 0x1F0C8F2585E20B1F, 0xC68E44A1C032A4C2,
					0xE3C65FB8AF155A0D, 0x00000001409EE8D5,
				},
				B: field.Fp{
					0x0000000000000000, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000,
					0x0000000000000000, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000,
					0x0000000000000000, 0x0000000000000000,
				},
			},
			// x(QB)
			Q: field.Fp2{
				A: field.Fp{
					0xF586DB4A16BE1880, 0x712F10D95E6C65A9, 0x9D5AAC3B83584B87, 0x4ECDAA98182C8261,
					0xAD7D4C15588FD230, 0x4197C54E96B7D926, 0xED15BB13E8C588ED, 0x3E299AEAD5AAD7C7,
					0xF36B25F1BD579F79, 0x000000021CE65B5B,
				},
				B: field.Fp{
					0x0000000000000000, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000,
					0x0000000000000000, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000,
					0x0000000000000000, 0x0000000000000000,
				},
			},
			// x(PB-QB)
			R: field.Fp2{
				A: field.Fp{
					0x7A87897A0C4C3FD7, 0x3C1879ECD4D33D76, 0x595C28A36FFBA1A0, 0xF53FF66A2A7FD0FB,
					0xB39F5A91230E56FA, 0x81F21610DA3EA8B5, 0xEBB3B9A627428A90, 0x8661123B35748010,
					0xE196173B9C48781D, 0x00000002198166AC,
				},
				B: field.Fp{
					0x5E3CC79B37006D6A, 0xE0358A9AB2EA7923, 0x3B725CB595180951, 0x0724637F1DD0C191,
					0x7BB031B67DAB9D19, 0x53CCB8BECEDD3435, 0xEE5DF7FFEBFA7A0A, 0x899EDB7D8B9694C4,
					0x0CA38EB4AE5506B6, 0x00000001489DE1CD,
				},
			},
		},
	})
}
