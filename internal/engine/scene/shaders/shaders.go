// Package shaders holds the GLSL sources used by the scene renderers.
package shaders

// CausticsDefine enables the caustics block of LitFragmentShader.
const CausticsDefine = "CAUSTICS"

// LitVertexShader transforms position/normal meshes and passes world space
// data to the fragment stage.
const LitVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    gl_Position = uViewProj * world;
}
`

// LitFragmentShader is ambient plus two directional lights with exp2 fog.
// With CAUSTICS defined it adds the tiled caustics texture below the water
// level.
const LitFragmentShader = `#version 410 core
in vec3 vWorldPos;
in vec3 vNormal;

uniform vec3 uColor;
uniform vec3 uAmbient;
uniform vec3 uKeyDir;
uniform vec3 uKeyColor;
uniform vec3 uFillDir;
uniform vec3 uFillColor;
uniform vec3 uCameraPos;

uniform bool uFogEnabled;
uniform vec3 uFogColor;
uniform float uFogDensity;

#ifdef CAUSTICS
uniform sampler2D uCaustics;
uniform float uCausticsTiling;
uniform float uCausticsIntensity;
uniform vec3 uCausticsTint;
uniform float uWaterLevel;
#endif

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    vec3 light = uAmbient;
    light += uKeyColor * max(dot(n, normalize(uKeyDir)), 0.0);
    light += uFillColor * max(dot(n, normalize(uFillDir)), 0.0);
    vec3 color = uColor * light;

#ifdef CAUSTICS
    if (vWorldPos.y < uWaterLevel) {
        float c = texture(uCaustics, vWorldPos.xz * uCausticsTiling).r;
        color += uCausticsTint * uCausticsIntensity * c;
    }
#endif

    if (uFogEnabled) {
        float d = length(vWorldPos - uCameraPos);
        float f = 1.0 - exp(-uFogDensity * uFogDensity * d * d);
        color = mix(color, uFogColor, clamp(f, 0.0, 1.0));
    }
    FragColor = vec4(color, 1.0);
}
`

// WaterVertexShader is LitVertexShader without normals.
const WaterVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vWorldPos;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    gl_Position = uViewProj * world;
}
`

// WaterFragmentShader shades a flat translucent surface with a sun glint
// and a slow ripple.
const WaterFragmentShader = `#version 410 core
in vec3 vWorldPos;

uniform vec4 uColor;
uniform vec3 uSunDir;
uniform vec3 uCameraPos;
uniform float uTime;

uniform bool uFogEnabled;
uniform vec3 uFogColor;
uniform float uFogDensity;

out vec4 FragColor;

void main() {
    vec2 p = vWorldPos.xz * 0.02;
    float ripple = sin(p.x * 3.0 + uTime) * cos(p.y * 2.0 - uTime * 0.7);
    vec3 n = normalize(vec3(ripple * 0.08, 1.0, ripple * 0.05));

    vec3 view = normalize(uCameraPos - vWorldPos);
    vec3 h = normalize(view + normalize(uSunDir));
    float spec = pow(max(dot(n, h), 0.0), 64.0);

    vec3 color = uColor.rgb + vec3(spec);
    if (uFogEnabled) {
        float d = length(vWorldPos - uCameraPos);
        float f = 1.0 - exp(-uFogDensity * uFogDensity * d * d);
        color = mix(color, uFogColor, clamp(f, 0.0, 1.0));
    }
    FragColor = vec4(color, uColor.a);
}
`
