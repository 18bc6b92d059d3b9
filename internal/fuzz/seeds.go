package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var languageSeeds = []string{
	"local x = 1\n",
	"local a, b = 1, 2 -- pair\n",
	"print('hi')\nprint \"bare\"\nf { 1, 2 }\n",
	"local t = { a = 1, [\"b\"] = 2, 3 }\n",
	"function m.f(a, b, ...)\n\treturn a + b * 2\nend\n",
	"local function g<T>(x: T): T return x end\n",
	"if a then b() elseif c then d() else e() end\n",
	"for i = 1, 10, 2 do continue end\n",
	"for k, v in pairs(t) do print(k, v) end\n",
	"while true do break end\nrepeat x += 1 until x > 3\n",
	"export type P<T = string> = { name: T, [number]: boolean }\n",
	"type F = (number, ...string) -> ()\n",
	"local s = `value {x + 1}`\n",
	"local y = if c then 1 else 2\n",
	"local z = (x :: any).field\n",
	"--[[ block ]] local q = 1; local r = 2;\n",
	"local long = [[\nraw\n]]\n",
	"--@luau-fmt skip\nlocal   keep   =   1\n",
	"local Players = game:GetService(\"Players\")\nlocal A = require(script.A)\n",
	"@native function fast() end\n",
	"local = 1\n",
	"function (\n",
	"\"unterminated\n",
	"--[==[ open\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
